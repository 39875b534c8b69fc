package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePair(t *testing.T) {
	low, high := NormalizePair(7, 3)
	assert.Equal(t, uint(3), low)
	assert.Equal(t, uint(7), high)

	// Order of arguments never matters
	low2, high2 := NormalizePair(3, 7)
	assert.Equal(t, low, low2)
	assert.Equal(t, high, high2)
}

func TestConversationParticipants(t *testing.T) {
	conv := Conversation{UserLowID: 3, UserHighID: 7}

	assert.True(t, conv.HasParticipant(3))
	assert.True(t, conv.HasParticipant(7))
	assert.False(t, conv.HasParticipant(5))

	assert.Equal(t, uint(7), conv.OtherParticipant(3))
	assert.Equal(t, uint(3), conv.OtherParticipant(7))
}
