// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/flipforge/flip-forecast/pkg/costs"
	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
)

// ApproxEqual reports whether two values agree within tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// SampleFlipInput returns the worked fix-and-flip scenario used across the
// test suites: $400k ARV, $60k repairs, $200k purchase, six-month hold,
// $180k bridge note at 10% and 2 points.
func SampleFlipInput() deal.Input {
	return deal.Input{
		Address:          "123 Maple St",
		SquareFootage:    1800,
		AfterRepairValue: 400000,
		RepairCost:       60000,
		PurchasePrice:    200000,
		HoldMonths:       6,
		Tranches: []costs.LoanTranche{
			{Principal: 180000, Points: 2, InterestRate: 10},
		},
		Holding: costs.HoldingCosts{
			PropertyTaxAnnual:      7200,
			InsuranceVacantMonthly: 400,
			UtilitiesMonthly:       500,
		},
		Buying: costs.BuyingCosts{EscrowAttorney: 3000},
		Selling: costs.SellingCosts{
			RealtorFee: costs.LineItem{Amount: 6, Mode: costs.ModePercent, Base: costs.BaseARV},
			Escrow:     2000,
			Staging:    2000,
			Marketing:  1000,
		},
	}
}

// SampleLoanProduct returns a representative DSCR rental product.
func SampleLoanProduct() underwrite.LoanProduct {
	return underwrite.LoanProduct{
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
	}
}
