package transport

import (
	"time"

	"conectaleads_backend/internal/inbox/domain"

	"github.com/google/uuid"
)

type ReplyRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

type ListConversationsRequest struct {
	Status   *string `form:"status" validate:"omitempty,oneof=open closed"`
	Channel  *string `form:"channel" validate:"omitempty,oneof=telegram whatsapp email sms"`
	Page     int     `form:"page" validate:"omitempty,min=1"`
	PageSize int     `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type ConversationResponse struct {
	ID            uuid.UUID  `json:"id"`
	LeadID        *uuid.UUID `json:"leadId,omitempty"`
	Channel       string     `json:"channel"`
	ExternalID    string     `json:"externalId"`
	Status        string     `json:"status"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func ToConversationResponse(c domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            c.ID,
		LeadID:        c.LeadID,
		Channel:       c.Channel,
		ExternalID:    c.ExternalID,
		Status:        c.Status,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Direction string    `json:"direction"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Direction: m.Direction,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

type ThreadResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}
