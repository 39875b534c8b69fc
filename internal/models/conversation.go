package models

import (
	"time"
)

// Conversation is the durable channel between exactly two users. The pair is
// stored normalized (lower user id first) and carries a unique composite index
// so a concurrent get-or-create cannot produce duplicates.
type Conversation struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	UserLowID     uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_low_id"`
	UserHighID    uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_high_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	UserLow  User `gorm:"foreignKey:UserLowID" json:"-"`
	UserHigh User `gorm:"foreignKey:UserHighID" json:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// NormalizePair orders two user ids so the same unordered pair always maps to
// the same (low, high) columns.
func NormalizePair(a, b uint) (low, high uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the given user belongs to the conversation
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

// OtherParticipant returns the id of the peer for the given user
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}
