package models

import (
	"time"

	"gorm.io/gorm"
)

type BountyStatus string

const (
	BountyClaimed        BountyStatus = "claimed"
	BountyFoundBuyer     BountyStatus = "found_buyer"
	BountySubmittedOffer BountyStatus = "submitted_offer"
	BountyAcceptedOffer  BountyStatus = "accepted_offer"
	BountyClosed         BountyStatus = "closed"
)

// bountyNext is the forward-only transition table. Closed has no successor.
var bountyNext = map[BountyStatus]BountyStatus{
	BountyClaimed:        BountyFoundBuyer,
	BountyFoundBuyer:     BountySubmittedOffer,
	BountySubmittedOffer: BountyAcceptedOffer,
	BountyAcceptedOffer:  BountyClosed,
}

// BountyClaim is a wholesaler's claim to the incentive fee on a listing. The
// reward amount is copied from the listing at claim time so later listing
// edits do not change what is owed.
type BountyClaim struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ListingID       uint           `gorm:"not null;uniqueIndex:idx_bounty_listing_wholesaler" json:"listing_id"`
	WholesalerID    uint           `gorm:"not null;uniqueIndex:idx_bounty_listing_wholesaler" json:"wholesaler_id"`
	RewardAmount    float64        `gorm:"not null" json:"reward_amount"`
	Status          BountyStatus   `gorm:"type:varchar(20);not null;default:'claimed'" json:"status"`
	PayoutReference string         `gorm:"type:varchar(100)" json:"payout_reference,omitempty"`
	ClosedAt        *time.Time     `json:"closed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Listing    Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Wholesaler User    `gorm:"foreignKey:WholesalerID" json:"wholesaler,omitempty"`
}

func (BountyClaim) TableName() string {
	return "bounty_claims"
}

// BeforeCreate hook
func (b *BountyClaim) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BountyClaimed
	}
	return nil
}

// NextStatus returns the single allowed successor status. ok is false when
// the claim is closed.
func (b *BountyClaim) NextStatus() (BountyStatus, bool) {
	next, ok := bountyNext[b.Status]
	return next, ok
}

// CanAdvanceTo validates one forward step; skipping stages is rejected
func (b *BountyClaim) CanAdvanceTo(to BountyStatus) bool {
	next, ok := bountyNext[b.Status]
	return ok && next == to
}

// IsClosed reports whether the claim reached its terminal status
func (b *BountyClaim) IsClosed() bool {
	return b.Status == BountyClosed
}
