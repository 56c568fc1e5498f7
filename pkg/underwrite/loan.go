package underwrite

import (
	"fmt"

	"github.com/flipforge/flip-forecast/pkg/amortize"
	"github.com/flipforge/flip-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// RateTier bounds the offered interest rate for applicants at or above a
// credit score floor. Tiers are ordered best-credit-first in the catalog.
type RateTier struct {
	MinCredit int     `mapstructure:"minCredit" yaml:"minCredit" json:"minCredit"`
	MinRate   float64 `mapstructure:"minRate" yaml:"minRate" json:"minRate"`
	MaxRate   float64 `mapstructure:"maxRate" yaml:"maxRate" json:"maxRate"`
}

// LoanProduct is one static catalog entry. The engine treats it as read-only
// lookup data and never mutates it.
type LoanProduct struct {
	Name         string     `mapstructure:"name" yaml:"name" json:"name"`
	Category     string     `mapstructure:"category" yaml:"category" json:"category"`
	MinAmount    float64    `mapstructure:"minAmount" yaml:"minAmount" json:"minAmount"`
	MaxAmount    float64    `mapstructure:"maxAmount" yaml:"maxAmount" json:"maxAmount"`
	MaxLTV       float64    `mapstructure:"maxLTV" yaml:"maxLTV" json:"maxLTV"`
	MaxLTC       float64    `mapstructure:"maxLTC" yaml:"maxLTC,omitempty" json:"maxLTC,omitempty"`
	MinDSCR      float64    `mapstructure:"minDSCR" yaml:"minDSCR,omitempty" json:"minDSCR,omitempty"`
	MinCredit    int        `mapstructure:"minCredit" yaml:"minCredit" json:"minCredit"`
	TermMonths   int        `mapstructure:"termMonths" yaml:"termMonths" json:"termMonths"`
	InterestOnly bool       `mapstructure:"interestOnly" yaml:"interestOnly,omitempty" json:"interestOnly,omitempty"`
	RateTiers    []RateTier `mapstructure:"rateTiers" yaml:"rateTiers,omitempty" json:"rateTiers,omitempty"`
}

// RateForCredit returns the best-tier minimum rate available to a credit
// score, falling back to the worst tier's max rate when no tier matches.
func (p LoanProduct) RateForCredit(creditScore int) float64 {
	for _, tier := range p.RateTiers {
		if creditScore >= tier.MinCredit {
			return tier.MinRate
		}
	}
	if len(p.RateTiers) > 0 {
		return p.RateTiers[len(p.RateTiers)-1].MaxRate
	}
	return 0
}

// LoanInput describes one underwriting request.
type LoanInput struct {
	LoanAmount    float64 `mapstructure:"loanAmount" yaml:"loanAmount" json:"loanAmount"`
	PropertyValue float64 `mapstructure:"propertyValue" yaml:"propertyValue" json:"propertyValue"`
	PurchasePrice float64 `mapstructure:"purchasePrice" yaml:"purchasePrice,omitempty" json:"purchasePrice,omitempty"`
	RehabBudget   float64 `mapstructure:"rehabBudget" yaml:"rehabBudget,omitempty" json:"rehabBudget,omitempty"`
	MonthlyNOI    float64 `mapstructure:"monthlyNOI" yaml:"monthlyNOI,omitempty" json:"monthlyNOI,omitempty"`
	CreditScore   int     `mapstructure:"creditScore" yaml:"creditScore" json:"creditScore"`
	InterestRate  float64 `mapstructure:"interestRate" yaml:"interestRate,omitempty" json:"interestRate,omitempty"`
	HeldMonths    int     `mapstructure:"heldMonths" yaml:"heldMonths,omitempty" json:"heldMonths,omitempty"`
}

// LoanResult is the underwriting output. Warnings list every violated
// product constraint; an empty list means no flagged constraint, not
// approval, which is a business decision outside this engine.
type LoanResult struct {
	Product        string   `json:"product"`
	InterestRate   float64  `json:"interestRate"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	TotalInterest  float64  `json:"totalInterest"`
	LTV            float64  `json:"ltv"`
	LTC            float64  `json:"ltc"`
	DSCR           float64  `json:"dscr"`
	Warnings       []string `json:"warnings"`
}

// Underwriter evaluates loan requests against products.
type Underwriter struct {
	logger *zap.Logger
}

// NewUnderwriter creates an underwriter. A nil logger falls back to a no-op.
func NewUnderwriter(logger *zap.Logger) *Underwriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Underwriter{logger: logger}
}

// resolveRate prefers an explicitly quoted rate over the product's
// credit-tiered lookup.
func resolveRate(input LoanInput, product LoanProduct) float64 {
	if input.InterestRate != 0 {
		return input.InterestRate
	}
	return product.RateForCredit(input.CreditScore)
}

// EvaluateLoan computes payment, ratio, and coverage figures for a request
// against one product and appends a warning for each violated constraint.
// The checks are independent and non-exclusive; zero or more may fire.
func (u *Underwriter) EvaluateLoan(input LoanInput, product LoanProduct) LoanResult {
	rate := resolveRate(input, product)

	result := LoanResult{
		Product:      product.Name,
		InterestRate: rate,
	}

	if product.InterestOnly {
		heldMonths := input.HeldMonths
		if heldMonths <= 0 {
			heldMonths = product.TermMonths
		}
		result.MonthlyPayment = input.LoanAmount * mathutil.MonthlyRate(rate)
		result.TotalInterest = amortize.SimpleHeldInterest(input.LoanAmount, rate, heldMonths)
	} else {
		result.MonthlyPayment = amortize.MonthlyPayment(input.LoanAmount, rate, product.TermMonths)
		result.TotalInterest = amortize.TotalInterest(input.LoanAmount, result.MonthlyPayment, product.TermMonths)
	}

	result.LTV = mathutil.RatioPercent(input.LoanAmount, input.PropertyValue)
	result.LTC = mathutil.RatioPercent(input.LoanAmount, input.PurchasePrice+input.RehabBudget)
	result.DSCR = mathutil.Ratio(input.MonthlyNOI, result.MonthlyPayment)

	if result.LTV > product.MaxLTV {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("LTV %.1f%% exceeds product maximum %.1f%%", result.LTV, product.MaxLTV))
	}
	if product.MaxLTC > 0 && result.LTC > product.MaxLTC {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("LTC %.1f%% exceeds product maximum %.1f%%", result.LTC, product.MaxLTC))
	}
	if input.CreditScore < product.MinCredit {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("credit score %d below product minimum %d", input.CreditScore, product.MinCredit))
	}
	if result.DSCR > 0 && product.MinDSCR > 0 && result.DSCR < product.MinDSCR {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("DSCR %.2f below product minimum %.2f", result.DSCR, product.MinDSCR))
	}
	if input.LoanAmount < product.MinAmount {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("loan amount %.2f below product minimum %.2f", input.LoanAmount, product.MinAmount))
	}
	if product.MaxAmount > 0 && input.LoanAmount > product.MaxAmount {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("loan amount %.2f above product maximum %.2f", input.LoanAmount, product.MaxAmount))
	}

	if len(result.Warnings) > 0 {
		u.logger.Debug("loan request flagged",
			zap.String("op", "underwrite.EvaluateLoan"),
			zap.String("product", product.Name),
			zap.Int("warnings", len(result.Warnings)),
		)
	}

	return result
}

// AmortizationSchedule produces the month-by-month payment schedule for a
// request against an amortized product. Interest-only notes have no
// amortization, so they yield nil.
func (u *Underwriter) AmortizationSchedule(input LoanInput, product LoanProduct) []amortize.Payment {
	if product.InterestOnly {
		return nil
	}
	generator := amortize.NewScheduleGenerator(u.logger)
	return generator.GenerateSchedule(input.LoanAmount, resolveRate(input, product), product.TermMonths)
}
