package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBelowMarketPercent(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		marketPrice float64
		want        int
	}{
		{"ten percent below", 450000, 500000, 10},
		{"rounds up", 432500, 500000, 14}, // 13.5% rounds to 14
		{"rounds down", 433000, 500000, 13},
		{"at market clamps to zero", 500000, 500000, 0},
		{"above market clamps to zero", 550000, 500000, 0},
		{"zero market price", 450000, 0, 0},
		{"deep discount", 250000, 500000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Listing{Price: tt.price, MarketPrice: tt.marketPrice}
			assert.Equal(t, tt.want, l.BelowMarketPercent())
		})
	}
}

func TestHasReward(t *testing.T) {
	assert.False(t, (&Listing{}).HasReward())
	assert.False(t, (&Listing{RewardAmount: 0}).HasReward())
	assert.True(t, (&Listing{RewardAmount: 5000}).HasReward())
}
