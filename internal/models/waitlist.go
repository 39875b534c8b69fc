package models

import (
	"time"

	"gorm.io/gorm"
)

type WaitlistStatus string

const (
	WaitlistPending  WaitlistStatus = "pending"
	WaitlistAccepted WaitlistStatus = "accepted"
	WaitlistDeclined WaitlistStatus = "declined"
)

// WaitlistRequest is a buyer's petition to unlock a seller's contact details
// for one listing. The (user, listing) pair is unique at the storage layer.
type WaitlistRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_waitlist_user_listing" json:"user_id"`
	ListingID uint           `gorm:"not null;uniqueIndex:idx_waitlist_user_listing" json:"listing_id"`
	Status    WaitlistStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Note      string         `gorm:"type:text" json:"note,omitempty"`
	DecidedAt *time.Time     `json:"decided_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (WaitlistRequest) TableName() string {
	return "waitlist_requests"
}

// BeforeCreate hook
func (w *WaitlistRequest) BeforeCreate(tx *gorm.DB) error {
	if w.Status == "" {
		w.Status = WaitlistPending
	}
	return nil
}

// CanTransition validates a status change at the write boundary. Only a
// pending request may be decided, and only to accepted or declined.
func (w *WaitlistRequest) CanTransition(to WaitlistStatus) bool {
	if w.Status != WaitlistPending {
		return false
	}
	return to == WaitlistAccepted || to == WaitlistDeclined
}

// ContactVisible decides whether the requester may see the seller's contact
// information. The owner always sees their own; everyone else needs an
// accepted request.
func ContactVisible(status WaitlistStatus, found bool, requesterID, ownerID uint) bool {
	if requesterID == ownerID {
		return true
	}
	return found && status == WaitlistAccepted
}
