package models

import (
	"time"
)

type Message struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	ConversationID uint       `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint       `gorm:"not null;index" json:"sender_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	ListingID      *uint      `gorm:"index" json:"listing_id,omitempty"`
	IsRead         bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// Relationships
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	Sender       User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Listing      *Listing     `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
