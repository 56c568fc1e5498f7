// Package deal computes the complete profit-and-return profile of a
// fix-and-flip deal from a single input record. Every evaluation is a pure,
// total transform: no I/O, no shared state, and every derived figure is
// recomputed from scratch so nothing can drift between fields.
package deal

import (
	"github.com/flipforge/flip-forecast/pkg/constants"
	"github.com/flipforge/flip-forecast/pkg/costs"
	"github.com/flipforge/flip-forecast/pkg/mathutil"
)

// Input is the complete description of a property deal. Monetary fields
// default to zero; HoldMonths should be positive and ApplyDefaults enforces
// that before evaluation.
type Input struct {
	// Identification, informational only
	Address       string  `mapstructure:"address" yaml:"address,omitempty" json:"address,omitempty"`
	SquareFootage float64 `mapstructure:"squareFootage" yaml:"squareFootage,omitempty" json:"squareFootage,omitempty"`

	// Property values
	AfterRepairValue float64 `mapstructure:"afterRepairValue" yaml:"afterRepairValue" json:"afterRepairValue"`
	AsIsValue        float64 `mapstructure:"asIsValue" yaml:"asIsValue,omitempty" json:"asIsValue,omitempty"`
	RepairCost       float64 `mapstructure:"repairCost" yaml:"repairCost" json:"repairCost"`
	PurchasePrice    float64 `mapstructure:"purchasePrice" yaml:"purchasePrice" json:"purchasePrice"`
	HoldMonths       int     `mapstructure:"holdMonths" yaml:"holdMonths" json:"holdMonths"`

	// Financing
	Tranches  []costs.LoanTranche  `mapstructure:"tranches" yaml:"tranches,omitempty" json:"tranches,omitempty"`
	Financing costs.FinancingCosts `mapstructure:"financing" yaml:"financing,omitempty" json:"financing,omitempty"`

	// Cost categories
	Holding costs.HoldingCosts `mapstructure:"holding" yaml:"holding,omitempty" json:"holding,omitempty"`
	Buying  costs.BuyingCosts  `mapstructure:"buying" yaml:"buying,omitempty" json:"buying,omitempty"`
	Selling costs.SellingCosts `mapstructure:"selling" yaml:"selling,omitempty" json:"selling,omitempty"`

	// Deal-level extra costs outside the four categories
	Misc []costs.MiscItem `mapstructure:"misc" yaml:"misc,omitempty" json:"misc,omitempty"`
}

// ApplyDefaults fills in required defaults: a zero hold period becomes
// DefaultHoldMonths so monthly prorations downstream stay defined, and the
// tranche list is capped at the supported maximum.
func (in *Input) ApplyDefaults() {
	if in.HoldMonths <= 0 {
		in.HoldMonths = constants.DefaultHoldMonths
	}
	if len(in.Tranches) > constants.MaxLoanTranches {
		in.Tranches = in.Tranches[:constants.MaxLoanTranches]
	}
}

// Metrics is the derived output record. All fields are pure functions of the
// Input; none are stored independently of their inputs.
type Metrics struct {
	// Per-category totals
	FinancingTotal float64 `json:"financingTotal"`
	HoldingTotal   float64 `json:"holdingTotal"`
	BuyingTotal    float64 `json:"buyingTotal"`
	SellingTotal   float64 `json:"sellingTotal"`
	MiscTotal      float64 `json:"miscTotal"`

	// Headline figures
	TotalCost             float64 `json:"totalCost"`
	NetProfit             float64 `json:"netProfit"`
	MaximumAllowableOffer float64 `json:"maximumAllowableOffer"`

	// Capital position
	TotalBorrowed       float64 `json:"totalBorrowed"`
	CommittedCapital    float64 `json:"committedCapital"`
	DownPaymentRequired float64 `json:"downPaymentRequired"`

	// Return family. TotalCostROI divides by the full cost stack including
	// borrowed-financed costs; CashROI divides by committed capital only.
	// They are deliberately distinct metrics, never unified.
	PurchaseRehabROI             float64 `json:"purchaseRehabROI"`
	TotalCostROI                 float64 `json:"totalCostROI"`
	CashROI                      float64 `json:"cashROI"`
	AnnualizedCashOnCash         float64 `json:"annualizedCashOnCash"`
	AnnualizedTotalCapitalReturn float64 `json:"annualizedTotalCapitalReturn"`

	CostPerSqFt float64 `json:"costPerSqFt"`
}

// MaximumAllowableOffer derives the conventional offer ceiling from ARV and
// repair cost, floored at zero. It is recomputed on every evaluation rather
// than stored, which keeps it consistent whenever either input changes.
func MaximumAllowableOffer(afterRepairValue, repairCost float64) float64 {
	return mathutil.FloorZero(afterRepairValue*constants.MAOFactor - repairCost)
}

// Evaluate computes the full derived-metrics record for a deal. The cost-sum
// identity holds exactly: TotalCost is the sum of purchase price, repair
// cost, and the five category totals, and NetProfit is ARV minus TotalCost.
// A zero hold period is a degenerate-but-valid input here: prorated and
// annualized figures come back as 0, never NaN. Boundary loaders call
// ApplyDefaults so real inputs arrive with a positive hold period.
func Evaluate(input Input) Metrics {
	var m Metrics

	m.FinancingTotal = costs.FinancingTotal(input.Tranches, input.Financing, input.PurchasePrice, input.HoldMonths)
	m.HoldingTotal = input.Holding.Total(input.HoldMonths)
	m.BuyingTotal = input.Buying.Total(input.PurchasePrice, input.AfterRepairValue)
	m.SellingTotal = input.Selling.Total(input.PurchasePrice, input.AfterRepairValue)
	m.MiscTotal = costs.MiscTotal(input.Misc)

	m.TotalCost = input.PurchasePrice + input.RepairCost +
		m.FinancingTotal + m.HoldingTotal + m.BuyingTotal + m.SellingTotal + m.MiscTotal
	m.NetProfit = input.AfterRepairValue - m.TotalCost
	m.MaximumAllowableOffer = MaximumAllowableOffer(input.AfterRepairValue, input.RepairCost)

	for _, tranche := range input.Tranches {
		m.TotalBorrowed += tranche.ResolvedPrincipal(input.PurchasePrice)
	}
	m.CommittedCapital = mathutil.FloorZero(
		input.PurchasePrice + input.RepairCost + m.BuyingTotal - m.TotalBorrowed)

	firstTranchePrincipal := 0.0
	if len(input.Tranches) > 0 {
		firstTranchePrincipal = input.Tranches[0].ResolvedPrincipal(input.PurchasePrice)
	}
	m.DownPaymentRequired = mathutil.FloorZero(
		input.PurchasePrice + m.BuyingTotal - firstTranchePrincipal)

	m.PurchaseRehabROI = mathutil.RatioPercent(m.NetProfit, input.PurchasePrice+input.RepairCost)
	m.TotalCostROI = mathutil.RatioPercent(m.NetProfit, m.TotalCost)
	m.CashROI = mathutil.RatioPercent(m.NetProfit, m.CommittedCapital)

	annualization := mathutil.Ratio(constants.MonthsPerYear, float64(input.HoldMonths))
	m.AnnualizedCashOnCash = m.CashROI * annualization
	m.AnnualizedTotalCapitalReturn = m.TotalCostROI * annualization

	m.CostPerSqFt = mathutil.Ratio(input.RepairCost, input.SquareFootage)

	return m
}
