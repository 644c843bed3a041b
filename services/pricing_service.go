package services

import (
	"errors"
	"math"
)

var ErrInvalidStayLength = errors.New("invalid_stay_length")

// stayTier maps a range of nights to a long-stay discount multiplier.
type stayTier struct {
	MinNights  int
	MaxNights  int
	Multiplier float64
	Label      string
}

var stayTiers = []stayTier{
	{MinNights: 1, MaxNights: 1, Multiplier: 1.0, Label: "Standard rate"},
	{MinNights: 2, MaxNights: 3, Multiplier: 0.9, Label: "3+ nights (10% off)"},
	{MinNights: 4, MaxNights: 7, Multiplier: 0.8, Label: "Weekly (20% off)"},
	{MinNights: 8, MaxNights: 13, Multiplier: 0.7, Label: "2 weeks (30% off)"},
	{MinNights: 14, MaxNights: 28, Multiplier: 0.5, Label: "3 weeks (50% off)"},
	{MinNights: 29, MaxNights: 365, Multiplier: 0.7, Label: "Monthly (30% off)"},
}

type StayQuote struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightlyRate"`
	Multiplier  float64 `json:"multiplier"`
	TierLabel   string  `json:"tierLabel"`
	Total       float64 `json:"total"`
}

// QuoteStay prices a stay of the given length: nightly rate x nights x the
// tier multiplier. Stays outside 1..365 nights are rejected.
func QuoteStay(nightlyRate float64, nights int) (StayQuote, error) {
	if nightlyRate < 0 {
		return StayQuote{}, ErrInvalidStayLength
	}
	for _, tier := range stayTiers {
		if nights >= tier.MinNights && nights <= tier.MaxNights {
			total := math.Round(nightlyRate*float64(nights)*tier.Multiplier*100) / 100
			return StayQuote{
				Nights:      nights,
				NightlyRate: nightlyRate,
				Multiplier:  tier.Multiplier,
				TierLabel:   tier.Label,
				Total:       total,
			}, nil
		}
	}
	return StayQuote{}, ErrInvalidStayLength
}
