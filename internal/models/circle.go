// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CircleStatus represents the status of a circle invite.
type CircleStatus string

const (
	// CircleStatusPending indicates an invite awaiting the receiver's decision.
	CircleStatusPending CircleStatus = "pending"
	// CircleStatusAccepted indicates a mutual connection.
	CircleStatusAccepted CircleStatus = "accepted"
	// CircleStatusRejected indicates the receiver declined the invite.
	// The row is kept until the requester re-invites, which replaces it.
	CircleStatusRejected CircleStatus = "rejected"
)

// Circle represents a mutual-consent connection between two users.
// The requester sent the invite; only the receiver may accept or reject it.
type Circle struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID uuid.UUID    `gorm:"type:uuid;not null;index:idx_circles_requester" json:"requester_id"`
	ReceiverID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_circles_receiver" json:"receiver_id"`
	// PairKey is the normalized unordered pair. The unique index is what
	// makes check-then-insert safe when two invites for the same pair race.
	PairKey   string       `gorm:"not null;uniqueIndex:idx_circles_pair" json:"-"`
	Status    CircleStatus `gorm:"type:varchar(20);default:'pending';index:idx_circles_status" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver  User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Circle) TableName() string {
	return "circles"
}

// PairKeyFor returns the normalized unordered-pair key for two user IDs.
// Direction is preserved in the requester/receiver columns; the key only
// exists so the unique index covers both orderings.
func PairKeyFor(a, b uuid.UUID) string {
	as, bs := a.String(), b.String()
	if strings.Compare(as, bs) > 0 {
		as, bs = bs, as
	}
	return as + ":" + bs
}

// BeforeCreate assigns the UUID primary key and the normalized pair key.
func (cl *Circle) BeforeCreate(_ *gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	if cl.PairKey == "" {
		cl.PairKey = PairKeyFor(cl.RequesterID, cl.ReceiverID)
	}
	return nil
}

// OtherParty returns the endpoint of the circle that is not userID.
func (cl *Circle) OtherParty(userID uuid.UUID) User {
	if cl.RequesterID == userID {
		return cl.Receiver
	}
	return cl.Requester
}
