package config

import (
	"github.com/flipforge/flip-forecast/pkg/underwrite"
)

// DefaultProducts returns the built-in loan product catalog used when a
// configuration supplies none. Rates and bounds reflect typical private
// lending terms; a deployment overrides them in YAML.
func DefaultProducts() []underwrite.LoanProduct {
	return []underwrite.LoanProduct{
		{
			Name:         "Bridge 12mo",
			Category:     "bridge",
			MinAmount:    50000,
			MaxAmount:    1500000,
			MaxLTV:       75,
			MaxLTC:       85,
			MinCredit:    620,
			TermMonths:   12,
			InterestOnly: true,
			RateTiers: []underwrite.RateTier{
				{MinCredit: 680, MinRate: 10.0, MaxRate: 11.5},
				{MinCredit: 620, MinRate: 11.5, MaxRate: 13.0},
			},
		},
		{
			Name:         "Fix & Flip 18mo",
			Category:     "flip",
			MinAmount:    75000,
			MaxAmount:    2000000,
			MaxLTV:       70,
			MaxLTC:       90,
			MinCredit:    640,
			TermMonths:   18,
			InterestOnly: true,
			RateTiers: []underwrite.RateTier{
				{MinCredit: 720, MinRate: 9.5, MaxRate: 10.75},
				{MinCredit: 640, MinRate: 10.75, MaxRate: 12.5},
			},
		},
		{
			Name:       "DSCR Rental 30yr",
			Category:   "rental",
			MinAmount:  100000,
			MaxAmount:  2000000,
			MaxLTV:     80,
			MinDSCR:    1.20,
			MinCredit:  660,
			TermMonths: 360,
			RateTiers: []underwrite.RateTier{
				{MinCredit: 740, MinRate: 6.75, MaxRate: 7.25},
				{MinCredit: 700, MinRate: 7.25, MaxRate: 7.75},
				{MinCredit: 660, MinRate: 7.75, MaxRate: 8.50},
			},
		},
	}
}
