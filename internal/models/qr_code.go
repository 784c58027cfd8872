package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRCode stores the rendered QR image for a user's public profile link.
// QRCodeURL is a base64 PNG data URL so clients can embed it directly.
type QRCode struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	QRCodeURL       string    `gorm:"type:text;not null" json:"qr_code_url"`
	LastGeneratedAt time.Time `json:"last_generated_at"`
}

// TableName specifies the table name for GORM
func (QRCode) TableName() string {
	return "qr_codes"
}

func (q *QRCode) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
