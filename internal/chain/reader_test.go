package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountToInt64(t *testing.T) {
	assert.Equal(t, int64(0), countToInt64(nil))
	assert.Equal(t, int64(0), countToInt64(big.NewInt(0)))
	assert.Equal(t, int64(42), countToInt64(big.NewInt(42)))
}

func TestCampaignProgress(t *testing.T) {
	tests := []struct {
		sold     int64
		max      int64
		expected int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 0, 0}, // zero max never divides
	}

	for _, tt := range tests {
		got := campaignProgress(big.NewInt(tt.sold), big.NewInt(tt.max))
		assert.Equal(t, tt.expected, got, "%d/%d", tt.sold, tt.max)
	}
}
