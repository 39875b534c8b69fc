package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingPending ListingStatus = "pending"
	ListingSold    ListingStatus = "sold"
)

type Listing struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	Price        float64        `gorm:"not null" json:"price"`
	MarketPrice  float64        `gorm:"not null" json:"market_price"`
	Street       string         `gorm:"type:varchar(255);not null" json:"street"`
	City         string         `gorm:"type:varchar(100);not null;index" json:"city"`
	State        string         `gorm:"type:varchar(50);not null;index" json:"state"`
	Zip          string         `gorm:"type:varchar(20);not null" json:"zip"`
	Beds         int            `gorm:"not null" json:"beds"`
	Baths        float64        `gorm:"not null" json:"baths"`
	Sqft         int            `gorm:"not null" json:"sqft"`
	RewardAmount float64        `gorm:"default:0" json:"reward_amount"`
	Status       ListingStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner  User           `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Images []ListingImage `gorm:"foreignKey:ListingID" json:"images,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// BelowMarketPercent returns how far below market price the asking price sits,
// as a rounded whole percentage. Never negative: an at-market or above-market
// price reports 0.
func (l *Listing) BelowMarketPercent() int {
	if l.MarketPrice <= 0 || l.Price >= l.MarketPrice {
		return 0
	}
	return int(math.Round((l.MarketPrice - l.Price) / l.MarketPrice * 100))
}

// HasReward reports whether the listing carries a wholesaler bounty
func (l *Listing) HasReward() bool {
	return l.RewardAmount > 0
}

type ListingImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	PublicID  string    `gorm:"type:text" json:"public_id,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}
