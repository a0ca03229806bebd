// Package domain holds the storefront tracking data model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one storefront tracking event. The table is append-only; events
// are never updated or deleted by the application.
type Event struct {
	ID          uuid.UUID
	Type        string
	SessionID   string
	Path        string
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	UTMTerm     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}
