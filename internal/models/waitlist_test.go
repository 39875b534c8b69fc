package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitlistTransitions(t *testing.T) {
	pending := WaitlistRequest{Status: WaitlistPending}
	assert.True(t, pending.CanTransition(WaitlistAccepted))
	assert.True(t, pending.CanTransition(WaitlistDeclined))
	assert.False(t, pending.CanTransition(WaitlistPending))

	// Decided requests are frozen
	accepted := WaitlistRequest{Status: WaitlistAccepted}
	assert.False(t, accepted.CanTransition(WaitlistDeclined))
	assert.False(t, accepted.CanTransition(WaitlistPending))

	declined := WaitlistRequest{Status: WaitlistDeclined}
	assert.False(t, declined.CanTransition(WaitlistAccepted))
}

func TestContactVisible(t *testing.T) {
	const owner, requester = uint(1), uint(2)

	tests := []struct {
		name   string
		status WaitlistStatus
		found  bool
		caller uint
		want   bool
	}{
		{"owner always sees own contact", "", false, owner, true},
		{"no request hides contact", "", false, requester, false},
		{"pending request hides contact", WaitlistPending, true, requester, false},
		{"declined request hides contact", WaitlistDeclined, true, requester, false},
		{"accepted request unlocks contact", WaitlistAccepted, true, requester, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContactVisible(tt.status, tt.found, tt.caller, owner))
		})
	}
}
