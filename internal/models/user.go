// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user in the Tapcard application.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Fullname  string         `gorm:"not null" json:"fullname"`
	Bio       string         `gorm:"type:text" json:"bio"`
	DOB       *time.Time     `gorm:"type:date" json:"dob,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SocialLinks     []SocialLink     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"social_links,omitempty"`
	PortfolioItems  []PortfolioItem  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"portfolio_items,omitempty"`
	WorkExperiences []WorkExperience `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"work_experiences,omitempty"`
}

// BeforeCreate assigns a UUID primary key when one was not provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicProfile is the read-only projection of a user exposed on the public
// profile endpoint and on search results. Password and email stay private.
type PublicProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the public projection of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Fullname:  u.Fullname,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}
