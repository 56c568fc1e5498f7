// Package underwrite classifies evaluated deals and underwrites loan
// requests against a product catalog. Classification results are ordinary
// values, never errors: a NOT_RECOMMENDED verdict or a non-empty warning
// list is a normal output callers branch on.
package underwrite

import (
	"github.com/flipforge/flip-forecast/pkg/deal"
)

// FlipVerdict is the deal quality tier assigned to a flip analysis.
type FlipVerdict string

const (
	VerdictExcellent      FlipVerdict = "EXCELLENT"
	VerdictGood           FlipVerdict = "GOOD"
	VerdictCaution        FlipVerdict = "CAUTION"
	VerdictNotRecommended FlipVerdict = "NOT_RECOMMENDED"
)

// Verdict tier thresholds. Each tier requires BOTH its ROI and absolute
// profit floor: a high-ROI micro-deal is intentionally downgraded.
const (
	excellentMinROI    = 25.0
	excellentMinProfit = 50000.0

	goodMinROI    = 15.0
	goodMinProfit = 25000.0

	cautionMinROI = 5.0
)

// ClassifyFlip maps a purchase+rehab ROI and net profit onto a verdict tier.
// Tiers are evaluated top to bottom with first-match-wins semantics.
func ClassifyFlip(purchaseRehabROI, netProfit float64) FlipVerdict {
	switch {
	case purchaseRehabROI >= excellentMinROI && netProfit > excellentMinProfit:
		return VerdictExcellent
	case purchaseRehabROI >= goodMinROI && netProfit > goodMinProfit:
		return VerdictGood
	case purchaseRehabROI >= cautionMinROI && netProfit > 0:
		return VerdictCaution
	default:
		return VerdictNotRecommended
	}
}

// FlipAnalysis bundles the derived metrics with the verdict so callers
// receive one result record.
type FlipAnalysis struct {
	Metrics deal.Metrics `json:"metrics"`
	Verdict FlipVerdict  `json:"verdict"`
}

// EvaluateFlipDeal runs the full deal evaluation and classification.
func EvaluateFlipDeal(input deal.Input) FlipAnalysis {
	metrics := deal.Evaluate(input)
	return FlipAnalysis{
		Metrics: metrics,
		Verdict: ClassifyFlip(metrics.PurchaseRehabROI, metrics.NetProfit),
	}
}
