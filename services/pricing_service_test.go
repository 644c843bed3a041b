package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStay_TierBoundaries(t *testing.T) {
	cases := []struct {
		nights     int
		multiplier float64
	}{
		{1, 1.0},
		{2, 0.9},
		{3, 0.9},
		{4, 0.8},
		{7, 0.8},
		{8, 0.7},
		{13, 0.7},
		{14, 0.5},
		{28, 0.5},
		{29, 0.7},
		{365, 0.7},
	}

	for _, tc := range cases {
		quote, err := QuoteStay(100, tc.nights)
		require.NoError(t, err, "nights=%d", tc.nights)
		assert.Equal(t, tc.multiplier, quote.Multiplier, "nights=%d", tc.nights)
		assert.Equal(t, tc.nights, quote.Nights)
		assert.InDelta(t, 100*float64(tc.nights)*tc.multiplier, quote.Total, 0.001, "nights=%d", tc.nights)
	}
}

func TestQuoteStay_InvalidLength(t *testing.T) {
	for _, nights := range []int{0, -1, 366} {
		_, err := QuoteStay(100, nights)
		assert.ErrorIs(t, err, ErrInvalidStayLength, "nights=%d", nights)
	}
}

func TestQuoteStay_NegativeRate(t *testing.T) {
	_, err := QuoteStay(-10, 3)
	assert.Error(t, err)
}

func TestQuoteStay_RoundsToCents(t *testing.T) {
	quote, err := QuoteStay(99.99, 3)
	require.NoError(t, err)
	// 99.99 * 3 * 0.9 = 269.973
	assert.Equal(t, 269.97, quote.Total)
}
