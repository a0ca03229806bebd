package transport

import (
	"time"

	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/leads/scoring"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLeadRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=200"`
	Phone  string  `json:"phone" validate:"required,min=5,max=30"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Source *string `json:"source,omitempty" validate:"omitempty,max=100"`
}

type UpdateLeadRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Source *string `json:"source,omitempty" validate:"omitempty,max=100"`
}

type QualifyLeadRequest struct {
	Urgency          string `json:"urgency" validate:"omitempty,max=100"`
	InterestType     string `json:"interestType" validate:"omitempty,oneof=general specific"`
	CategoryInterest string `json:"categoryInterest" validate:"omitempty,max=200"`
	BudgetRange      string `json:"budgetRange" validate:"omitempty,max=100"`
	Notes            string `json:"notes,omitempty" validate:"max=2000"`
}

type RecordInteractionRequest struct {
	Type    string  `json:"type" validate:"required,oneof=offer_click whatsapp_click call email message meeting note"`
	Channel *string `json:"channel,omitempty" validate:"omitempty,oneof=whatsapp phone email sms"`
	Content string  `json:"content,omitempty" validate:"max=2000"`
}

type MoveStageRequest struct {
	StageID    uuid.UUID  `json:"stageId" validate:"required"`
	PipelineID *uuid.UUID `json:"pipelineId,omitempty"`
}

type OverrideScoreRequest struct {
	Score int `json:"score" validate:"min=0"`
}

type ListLeadsRequest struct {
	PipelineID *uuid.UUID `form:"pipelineId"`
	Stage      *string    `form:"stage" validate:"omitempty,max=50"`
	Search     string     `form:"search" validate:"max=100"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// Response DTOs

type LeadResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             *string    `json:"email,omitempty"`
	Source            *string    `json:"source,omitempty"`
	Score             int        `json:"score"`
	ScoreOverridden   bool       `json:"scoreOverridden"`
	Classification    string     `json:"classification"`
	Stage             string     `json:"stage"`
	PipelineID        *uuid.UUID `json:"pipelineId,omitempty"`
	PipelineStageID   *uuid.UUID `json:"pipelineStageId,omitempty"`
	LastMessageIntent *string    `json:"lastMessageIntent,omitempty"`
	LastContactAt     *time.Time `json:"lastContactAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func ToLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:                lead.ID,
		Name:              lead.Name,
		Phone:             lead.Phone,
		Email:             lead.Email,
		Source:            lead.Source,
		Score:             lead.Score,
		ScoreOverridden:   lead.ScoreOverridden,
		Classification:    string(scoring.Classify(lead.Score)),
		Stage:             lead.Stage,
		PipelineID:        lead.PipelineID,
		PipelineStageID:   lead.PipelineStageID,
		LastMessageIntent: lead.LastMessageIntent,
		LastContactAt:     lead.LastContactAt,
		CreatedAt:         lead.CreatedAt,
		UpdatedAt:         lead.UpdatedAt,
	}
}

func ToLeadResponses(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out
}

type ListLeadsResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

type QualificationResponse struct {
	ID               uuid.UUID `json:"id"`
	LeadID           uuid.UUID `json:"leadId"`
	Urgency          string    `json:"urgency"`
	InterestType     string    `json:"interestType"`
	CategoryInterest string    `json:"categoryInterest"`
	BudgetRange      string    `json:"budgetRange"`
	Notes            string    `json:"notes,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToQualificationResponse(q domain.Qualification) QualificationResponse {
	return QualificationResponse{
		ID:               q.ID,
		LeadID:           q.LeadID,
		Urgency:          q.Urgency,
		InterestType:     q.InterestType,
		CategoryInterest: q.CategoryInterest,
		BudgetRange:      q.BudgetRange,
		Notes:            q.Notes,
		UpdatedAt:        q.UpdatedAt,
	}
}

type InteractionResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	Type      string    `json:"type"`
	Channel   *string   `json:"channel,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToInteractionResponse(i domain.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:        i.ID,
		LeadID:    i.LeadID,
		Type:      i.Type,
		Channel:   i.Channel,
		Content:   i.Content,
		CreatedAt: i.CreatedAt,
	}
}

type StageResponse struct {
	ID         uuid.UUID `json:"id"`
	PipelineID uuid.UUID `json:"pipelineId,omitempty"`
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"orderIndex"`
}

func ToStageResponse(s domain.Stage) StageResponse {
	return StageResponse{
		ID:         s.ID,
		PipelineID: s.PipelineID,
		Key:        s.Key,
		Name:       s.Name,
		OrderIndex: s.OrderIndex,
	}
}

// BoardColumnResponse is one kanban column: the stage plus its leads in order.
type BoardColumnResponse struct {
	Stage StageResponse  `json:"stage"`
	Leads []LeadResponse `json:"leads"`
}

type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}
