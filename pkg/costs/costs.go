// Package costs aggregates the four transaction cost categories of a deal:
// financing, holding, buying, and selling. Each aggregator sums a fixed
// schedule of line items; no subtraction occurs inside an aggregator, so
// every total is non-negative given non-negative inputs.
package costs

import (
	"github.com/flipforge/flip-forecast/pkg/amortize"
	"github.com/flipforge/flip-forecast/pkg/constants"
	"github.com/flipforge/flip-forecast/pkg/mathutil"
)

// Mode selects how a line item amount is interpreted.
type Mode string

const (
	// ModeFlat treats the amount as raw dollars.
	ModeFlat Mode = "flat"

	// ModePercent treats the amount as percentage points of a base value.
	ModePercent Mode = "percent"
)

// Base selects the reference value a percentage line item is taken against.
type Base string

const (
	// BasePurchasePrice resolves percentages against the purchase price.
	BasePurchasePrice Base = "purchasePrice"

	// BaseARV resolves percentages against the after-repair value.
	BaseARV Base = "arv"
)

// LineItem is a cost entry that may be a flat dollar figure or a percentage
// of a base value. The two sibling calculators this engine consolidates
// diverged on exactly this point (title insurance, realtor fee, transfer
// fee), so the mode travels with the item instead of living in the formula.
type LineItem struct {
	Amount float64 `mapstructure:"amount" yaml:"amount" json:"amount"`
	Mode   Mode    `mapstructure:"mode" yaml:"mode,omitempty" json:"mode,omitempty"`
	Base   Base    `mapstructure:"base" yaml:"base,omitempty" json:"base,omitempty"`
}

// Resolve converts the line item to dollars. An unset mode means flat.
func (li LineItem) Resolve(purchasePrice, arv float64) float64 {
	if li.Mode != ModePercent {
		return li.Amount
	}
	base := purchasePrice
	if li.Base == BaseARV {
		base = arv
	}
	return mathutil.PercentOf(base, li.Amount)
}

// MiscItem is a user-labeled extra cost. The label is presentation metadata
// only; it round-trips through serialization untouched and never affects
// arithmetic.
type MiscItem struct {
	Label  string  `mapstructure:"label" yaml:"label" json:"label"`
	Amount float64 `mapstructure:"amount" yaml:"amount" json:"amount"`
}

// MiscTotal sums the amounts of a misc item list.
func MiscTotal(items []MiscItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// LoanTranche describes one financing tranche of up to three on a deal. The
// principal may be given directly or derived from a loan-to-value percentage
// of the purchase price; a zero tranche contributes nothing.
type LoanTranche struct {
	Principal    float64 `mapstructure:"principal" yaml:"principal,omitempty" json:"principal,omitempty"`
	LTVPercent   float64 `mapstructure:"ltvPercent" yaml:"ltvPercent,omitempty" json:"ltvPercent,omitempty"`
	Points       float64 `mapstructure:"points" yaml:"points,omitempty" json:"points,omitempty"`
	InterestRate float64 `mapstructure:"interestRate" yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
}

// ResolvedPrincipal returns the tranche principal in dollars, deriving it
// from the LTV percentage when no explicit principal is set.
func (t LoanTranche) ResolvedPrincipal(purchasePrice float64) float64 {
	if t.Principal > 0 {
		return t.Principal
	}
	if t.LTVPercent > 0 {
		return mathutil.PercentOf(purchasePrice, t.LTVPercent)
	}
	return 0
}

// FinancingCosts holds the flat financing charges outside the tranches.
type FinancingCosts struct {
	Origination float64    `mapstructure:"origination" yaml:"origination,omitempty" json:"origination,omitempty"`
	Misc        []MiscItem `mapstructure:"misc" yaml:"misc,omitempty" json:"misc,omitempty"`
}

// FinancingTotal sums points and held interest across all tranches plus flat
// origination and misc financing costs. Each tranche is independent.
func FinancingTotal(tranches []LoanTranche, fc FinancingCosts, purchasePrice float64, holdMonths int) float64 {
	total := fc.Origination + MiscTotal(fc.Misc)
	for _, tranche := range tranches {
		principal := tranche.ResolvedPrincipal(purchasePrice)
		total += amortize.PointsCost(principal, tranche.Points)
		total += amortize.SimpleHeldInterest(principal, tranche.InterestRate, holdMonths)
	}
	return total
}

// InsuranceMode selects which insurance figure the holding aggregate uses.
// The source calculators only ever summed the vacant figure even though both
// were collected; the mode keeps the occupied value usable without changing
// the default behavior.
type InsuranceMode string

const (
	// InsuranceVacant sums only the vacant-property premium (default).
	InsuranceVacant InsuranceMode = "vacant"

	// InsuranceOccupied sums only the occupied-property premium.
	InsuranceOccupied InsuranceMode = "occupied"

	// InsuranceBoth sums both premiums.
	InsuranceBoth InsuranceMode = "both"
)

// HoldingCosts holds the monthly-accruing carrying costs of the property.
// Property tax is entered annually and prorated; everything else is monthly.
type HoldingCosts struct {
	PropertyTaxAnnual        float64       `mapstructure:"propertyTaxAnnual" yaml:"propertyTaxAnnual,omitempty" json:"propertyTaxAnnual,omitempty"`
	HOAMonthly               float64       `mapstructure:"hoaMonthly" yaml:"hoaMonthly,omitempty" json:"hoaMonthly,omitempty"`
	InsuranceVacantMonthly   float64       `mapstructure:"insuranceVacantMonthly" yaml:"insuranceVacantMonthly,omitempty" json:"insuranceVacantMonthly,omitempty"`
	InsuranceOccupiedMonthly float64       `mapstructure:"insuranceOccupiedMonthly" yaml:"insuranceOccupiedMonthly,omitempty" json:"insuranceOccupiedMonthly,omitempty"`
	UtilitiesMonthly         float64       `mapstructure:"utilitiesMonthly" yaml:"utilitiesMonthly,omitempty" json:"utilitiesMonthly,omitempty"`
	InsuranceMode            InsuranceMode `mapstructure:"insuranceMode" yaml:"insuranceMode,omitempty" json:"insuranceMode,omitempty"`
	Misc                     []MiscItem    `mapstructure:"misc" yaml:"misc,omitempty" json:"misc,omitempty"`
}

// monthlyInsurance resolves the insurance premium per the configured mode.
func (h HoldingCosts) monthlyInsurance() float64 {
	switch h.InsuranceMode {
	case InsuranceOccupied:
		return h.InsuranceOccupiedMonthly
	case InsuranceBoth:
		return h.InsuranceVacantMonthly + h.InsuranceOccupiedMonthly
	default:
		return h.InsuranceVacantMonthly
	}
}

// Total prorates the carrying costs over the hold period.
func (h HoldingCosts) Total(holdMonths int) float64 {
	monthly := h.PropertyTaxAnnual/constants.MonthsPerYear +
		h.HOAMonthly +
		h.monthlyInsurance() +
		h.UtilitiesMonthly +
		MiscTotal(h.Misc)
	return monthly * float64(holdMonths)
}

// BuyingCosts holds acquisition transaction costs. Title insurance may be
// flat dollars or a percentage of purchase price.
type BuyingCosts struct {
	EscrowAttorney float64    `mapstructure:"escrowAttorney" yaml:"escrowAttorney,omitempty" json:"escrowAttorney,omitempty"`
	TitleInsurance LineItem   `mapstructure:"titleInsurance" yaml:"titleInsurance,omitempty" json:"titleInsurance,omitempty"`
	Misc           []MiscItem `mapstructure:"misc" yaml:"misc,omitempty" json:"misc,omitempty"`
}

// Total sums the acquisition transaction costs.
func (b BuyingCosts) Total(purchasePrice, arv float64) float64 {
	return b.EscrowAttorney + b.TitleInsurance.Resolve(purchasePrice, arv) + MiscTotal(b.Misc)
}

// SellingCosts holds disposition transaction costs. Realtor and transfer
// fees may be flat dollars or percentages of ARV.
type SellingCosts struct {
	Escrow      float64    `mapstructure:"escrow" yaml:"escrow,omitempty" json:"escrow,omitempty"`
	Recording   float64    `mapstructure:"recording" yaml:"recording,omitempty" json:"recording,omitempty"`
	RealtorFee  LineItem   `mapstructure:"realtorFee" yaml:"realtorFee,omitempty" json:"realtorFee,omitempty"`
	TransferFee LineItem   `mapstructure:"transferFee" yaml:"transferFee,omitempty" json:"transferFee,omitempty"`
	Warranty    float64    `mapstructure:"warranty" yaml:"warranty,omitempty" json:"warranty,omitempty"`
	Staging     float64    `mapstructure:"staging" yaml:"staging,omitempty" json:"staging,omitempty"`
	Marketing   float64    `mapstructure:"marketing" yaml:"marketing,omitempty" json:"marketing,omitempty"`
	Misc        []MiscItem `mapstructure:"misc" yaml:"misc,omitempty" json:"misc,omitempty"`
}

// Total sums the disposition transaction costs.
func (s SellingCosts) Total(purchasePrice, arv float64) float64 {
	return s.Escrow +
		s.Recording +
		s.RealtorFee.Resolve(purchasePrice, arv) +
		s.TransferFee.Resolve(purchasePrice, arv) +
		s.Warranty +
		s.Staging +
		s.Marketing +
		MiscTotal(s.Misc)
}
