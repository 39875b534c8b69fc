package models

import (
	"time"

	"gorm.io/gorm"
)

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
	PayoutFailed    PayoutStatus = "failed"
)

// Payout records the reward transfer initiated when a bounty claim closes
type Payout struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ClaimID      uint           `gorm:"not null;index" json:"claim_id"`
	WholesalerID uint           `gorm:"not null;index" json:"wholesaler_id"`
	Amount       float64        `gorm:"not null" json:"amount"`
	Reference    string         `gorm:"uniqueIndex;not null" json:"reference"`
	TransferCode string         `gorm:"type:varchar(100)" json:"transfer_code,omitempty"`
	Status       PayoutStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	FailureNote  string         `gorm:"type:text" json:"failure_note,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Claim      BountyClaim `gorm:"foreignKey:ClaimID" json:"claim,omitempty"`
	Wholesaler User        `gorm:"foreignKey:WholesalerID" json:"wholesaler,omitempty"`
}

func (Payout) TableName() string {
	return "payouts"
}
