package underwrite

import (
	"testing"

	"github.com/flipforge/flip-forecast/pkg/costs"
	"github.com/flipforge/flip-forecast/pkg/deal"
)

func TestClassifyFlip(t *testing.T) {
	tests := []struct {
		name      string
		roi       float64
		netProfit float64
		expected  FlipVerdict
	}{
		{"Excellent deal", 33.2, 86400, VerdictExcellent},
		{"Excellent boundary ROI", 25.0, 50001, VerdictExcellent},
		{"High ROI but micro profit downgrades", 40.0, 10000, VerdictCaution},
		{"Big profit but thin ROI downgrades", 10.0, 100000, VerdictCaution},
		{"Good deal", 18.0, 30000, VerdictGood},
		{"Good boundary", 15.0, 25001, VerdictGood},
		{"Caution deal", 6.0, 5000, VerdictCaution},
		{"Profit at exactly zero", 10.0, 0, VerdictNotRecommended},
		{"Losing deal", -5.0, -20000, VerdictNotRecommended},
		{"Zero everything", 0, 0, VerdictNotRecommended},
		{"Excellent profit at exact threshold falls to good", 30.0, 50000, VerdictGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyFlip(tt.roi, tt.netProfit)
			if result != tt.expected {
				t.Errorf("ClassifyFlip(%v, %v) = %v, expected %v",
					tt.roi, tt.netProfit, result, tt.expected)
			}
		})
	}
}

// verdictRank orders tiers from worst to best for monotonicity checks.
func verdictRank(v FlipVerdict) int {
	switch v {
	case VerdictNotRecommended:
		return 0
	case VerdictCaution:
		return 1
	case VerdictGood:
		return 2
	case VerdictExcellent:
		return 3
	}
	return -1
}

func TestVerdictMonotonicity(t *testing.T) {
	rois := []float64{0, 5, 10, 15, 20, 25, 30, 50}
	profits := []float64{-1000, 0, 1, 10000, 25000, 25001, 50000, 50001, 100000}

	// Increasing profit at fixed ROI never worsens the verdict.
	for _, roi := range rois {
		previous := -1
		for _, profit := range profits {
			rank := verdictRank(ClassifyFlip(roi, profit))
			if rank < previous {
				t.Errorf("verdict worsened as profit rose: roi=%v profit=%v", roi, profit)
			}
			previous = rank
		}
	}

	// Increasing ROI at fixed profit never worsens the verdict.
	for _, profit := range profits {
		previous := -1
		for _, roi := range rois {
			rank := verdictRank(ClassifyFlip(roi, profit))
			if rank < previous {
				t.Errorf("verdict worsened as ROI rose: roi=%v profit=%v", roi, profit)
			}
			previous = rank
		}
	}
}

func TestEvaluateFlipDeal(t *testing.T) {
	input := deal.Input{
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

	analysis := EvaluateFlipDeal(input)
	if analysis.Verdict != VerdictExcellent {
		t.Errorf("Verdict = %v, expected %v (ROI %.1f, profit %.0f)",
			analysis.Verdict, VerdictExcellent,
			analysis.Metrics.PurchaseRehabROI, analysis.Metrics.NetProfit)
	}
}

func TestEvaluateFlipDealDegenerate(t *testing.T) {
	analysis := EvaluateFlipDeal(deal.Input{HoldMonths: 6})
	if analysis.Verdict != VerdictNotRecommended {
		t.Errorf("Verdict = %v, expected NOT_RECOMMENDED", analysis.Verdict)
	}
}
