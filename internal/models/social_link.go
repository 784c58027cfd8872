package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialLink is a single external link on a user's profile card.
type SocialLink struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PlatformName string    `gorm:"not null" json:"platform_name"`
	LinkURL      string    `gorm:"not null" json:"link_url"`
}

func (l *SocialLink) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
