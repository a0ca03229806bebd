package transport

import (
	"time"

	"conectaleads_backend/internal/tracking/domain"

	"github.com/google/uuid"
)

type TrackEventRequest struct {
	Type        string                 `json:"type" validate:"required,min=1,max=100"`
	SessionID   string                 `json:"sessionId" validate:"required,min=1,max=100"`
	Path        string                 `json:"path,omitempty" validate:"max=500"`
	Referrer    string                 `json:"referrer,omitempty" validate:"max=500"`
	UTMSource   string                 `json:"utmSource,omitempty" validate:"max=200"`
	UTMMedium   string                 `json:"utmMedium,omitempty" validate:"max=200"`
	UTMCampaign string                 `json:"utmCampaign,omitempty" validate:"max=200"`
	UTMContent  string                 `json:"utmContent,omitempty" validate:"max=200"`
	UTMTerm     string                 `json:"utmTerm,omitempty" validate:"max=200"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

type ListEventsRequest struct {
	Type      *string    `form:"type" validate:"omitempty,max=100"`
	SessionID *string    `form:"sessionId" validate:"omitempty,max=100"`
	Since     *time.Time `form:"since"`
	Page      int        `form:"page" validate:"omitempty,min=1"`
	PageSize  int        `form:"pageSize" validate:"omitempty,min=1,max=500"`
}

type EventResponse struct {
	ID          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	SessionID   string                 `json:"sessionId"`
	Path        string                 `json:"path,omitempty"`
	Referrer    string                 `json:"referrer,omitempty"`
	UTMSource   string                 `json:"utmSource,omitempty"`
	UTMMedium   string                 `json:"utmMedium,omitempty"`
	UTMCampaign string                 `json:"utmCampaign,omitempty"`
	UTMContent  string                 `json:"utmContent,omitempty"`
	UTMTerm     string                 `json:"utmTerm,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func ToEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Type:        e.Type,
		SessionID:   e.SessionID,
		Path:        e.Path,
		Referrer:    e.Referrer,
		UTMSource:   e.UTMSource,
		UTMMedium:   e.UTMMedium,
		UTMCampaign: e.UTMCampaign,
		UTMContent:  e.UTMContent,
		UTMTerm:     e.UTMTerm,
		Data:        e.Data,
		CreatedAt:   e.CreatedAt,
	}
}
