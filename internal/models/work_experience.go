package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkExperience is an entry in a user's work history.
// EndDate is nil for a current position.
type WorkExperience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyName string     `gorm:"not null" json:"company_name"`
	Role        string     `gorm:"not null" json:"role"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName keeps the singular table name used by earlier revisions.
func (WorkExperience) TableName() string {
	return "work_experience"
}

func (w *WorkExperience) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
