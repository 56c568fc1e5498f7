// Package amortize provides loan payment calculations for both fully
// amortized and interest-only instruments.
package amortize

import (
	"math"

	"github.com/flipforge/flip-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// MonthlyPayment calculates the monthly payment for a fixed-rate loan using
// the standard amortization formula. A zero principal or term yields zero; a
// zero rate degrades to straight-line repayment.
func MonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if principal == 0 || termMonths == 0 {
		return 0
	}

	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// TotalInterest calculates the interest paid over the full term given the
// monthly payment, floored at zero.
func TotalInterest(principal, monthlyPayment float64, termMonths int) float64 {
	return mathutil.FloorZero(monthlyPayment*float64(termMonths) - principal)
}

// SimpleHeldInterest calculates interest-only carrying cost for a short-hold
// instrument: the borrower services interest for heldMonths then exits. True
// amortization is not meaningful for bridge and fix-and-flip notes.
func SimpleHeldInterest(principal, annualInterestRate float64, heldMonths int) float64 {
	return principal * mathutil.MonthlyRate(annualInterestRate) * float64(heldMonths)
}

// PointsCost calculates the up-front cost of loan points on a principal.
func PointsCost(principal, points float64) float64 {
	return mathutil.PercentOf(principal, points)
}

// Payment holds the values for a given payment in a schedule.
type Payment struct {
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// ScheduleGenerator produces full amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the month-by-month amortization schedule for a
// fixed-rate loan. The final payment absorbs rounding drift so the balance
// lands exactly at zero.
func (g *ScheduleGenerator) GenerateSchedule(principal, annualInterestRate float64, termMonths int) []Payment {
	if principal <= 0 || termMonths <= 0 {
		return nil
	}

	monthlyPayment := MonthlyPayment(principal, annualInterestRate, termMonths)
	schedule := make([]Payment, 0, termMonths)
	balance := principal

	for month := 1; month <= termMonths; month++ {
		var p Payment
		p.Interest = balance * mathutil.MonthlyRate(annualInterestRate)
		p.Principal = monthlyPayment - p.Interest
		p.Payment = monthlyPayment

		if month == termMonths || mathutil.Round(balance-p.Principal) <= 0 {
			// We will get machine error otherwise so just set to 0.
			p.Principal = balance
			p.Payment = p.Principal + p.Interest
			p.RemainingPrincipal = 0
			schedule = append(schedule, p)
			if month != termMonths {
				g.logger.Debug("loan retired ahead of nominal term",
					zap.String("op", "amortize.GenerateSchedule"),
					zap.Int("month", month),
					zap.Int("term_months", termMonths),
				)
			}
			break
		}

		balance -= p.Principal
		p.RemainingPrincipal = balance
		schedule = append(schedule, p)
	}

	return schedule
}
