package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recognized analytics event types.
const (
	EventTypeProfileView = "profile_view"
	EventTypeLinkClick   = "link_click"
	EventTypeQRScan      = "qr_scan"
)

// AnalyticsEvent records a single interaction with a user's profile.
// EventData is an optional free-form JSON string with event details.
type AnalyticsEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_analytics_user" json:"user_id"`
	EventType string    `gorm:"not null;index:idx_analytics_event_type" json:"event_type"`
	EventData string    `gorm:"type:text" json:"event_data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (AnalyticsEvent) TableName() string {
	return "analytics"
}

func (a *AnalyticsEvent) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// KnownEventType reports whether t is one of the recognized event types.
func KnownEventType(t string) bool {
	switch t {
	case EventTypeProfileView, EventTypeLinkClick, EventTypeQRScan:
		return true
	}
	return false
}
