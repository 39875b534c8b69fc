package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBountyProgressionIsLinear(t *testing.T) {
	claim := BountyClaim{Status: BountyClaimed, RewardAmount: 5000}

	want := []BountyStatus{
		BountyFoundBuyer,
		BountySubmittedOffer,
		BountyAcceptedOffer,
		BountyClosed,
	}

	for _, expected := range want {
		next, ok := claim.NextStatus()
		require.True(t, ok, "claim at %s should have a successor", claim.Status)
		assert.Equal(t, expected, next)
		claim.Status = next
	}

	// Full progression never changes the copied reward
	assert.Equal(t, 5000.0, claim.RewardAmount)
	assert.True(t, claim.IsClosed())
}

func TestClosedClaimIsTerminal(t *testing.T) {
	claim := BountyClaim{Status: BountyClosed}

	_, ok := claim.NextStatus()
	assert.False(t, ok)

	for _, target := range []BountyStatus{BountyClaimed, BountyFoundBuyer, BountySubmittedOffer, BountyAcceptedOffer, BountyClosed} {
		assert.False(t, claim.CanAdvanceTo(target), "closed claim must not move to %s", target)
	}
}

func TestCanAdvanceToRejectsSkips(t *testing.T) {
	claim := BountyClaim{Status: BountyClaimed}

	assert.True(t, claim.CanAdvanceTo(BountyFoundBuyer))
	assert.False(t, claim.CanAdvanceTo(BountySubmittedOffer))
	assert.False(t, claim.CanAdvanceTo(BountyAcceptedOffer))
	assert.False(t, claim.CanAdvanceTo(BountyClosed))
	assert.False(t, claim.CanAdvanceTo(BountyClaimed))
}
