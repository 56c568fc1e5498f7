// Package validation rejects malformed records before they reach the
// calculation engine. The engine itself is total over well-formed inputs, so
// all shape errors are caught here at the boundary.
package validation

import (
	"fmt"
	"math"

	"github.com/flipforge/flip-forecast/pkg/constants"
	"github.com/flipforge/flip-forecast/pkg/costs"
	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
)

// namedValue pairs a field name with its value for shape checks.
type namedValue struct {
	name  string
	value float64
}

func checkFinite(fields []namedValue) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("field %s is not a finite number", f.name)
		}
	}
	return nil
}

func checkNonNegative(fields []namedValue) error {
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("field %s must not be negative, got %v", f.name, f.value)
		}
	}
	return nil
}

func miscFields(prefix string, items []costs.MiscItem) []namedValue {
	fields := make([]namedValue, 0, len(items))
	for i, item := range items {
		fields = append(fields, namedValue{fmt.Sprintf("%s.misc[%d].amount", prefix, i), item.Amount})
	}
	return fields
}

// ValidateDealInput checks a flip deal record for non-finite or negative
// values and structural limits. A nil error means the record is safe to
// evaluate.
func ValidateDealInput(input deal.Input) error {
	fields := []namedValue{
		{"squareFootage", input.SquareFootage},
		{"afterRepairValue", input.AfterRepairValue},
		{"asIsValue", input.AsIsValue},
		{"repairCost", input.RepairCost},
		{"purchasePrice", input.PurchasePrice},
		{"financing.origination", input.Financing.Origination},
		{"holding.propertyTaxAnnual", input.Holding.PropertyTaxAnnual},
		{"holding.hoaMonthly", input.Holding.HOAMonthly},
		{"holding.insuranceVacantMonthly", input.Holding.InsuranceVacantMonthly},
		{"holding.insuranceOccupiedMonthly", input.Holding.InsuranceOccupiedMonthly},
		{"holding.utilitiesMonthly", input.Holding.UtilitiesMonthly},
		{"buying.escrowAttorney", input.Buying.EscrowAttorney},
		{"buying.titleInsurance.amount", input.Buying.TitleInsurance.Amount},
		{"selling.escrow", input.Selling.Escrow},
		{"selling.recording", input.Selling.Recording},
		{"selling.realtorFee.amount", input.Selling.RealtorFee.Amount},
		{"selling.transferFee.amount", input.Selling.TransferFee.Amount},
		{"selling.warranty", input.Selling.Warranty},
		{"selling.staging", input.Selling.Staging},
		{"selling.marketing", input.Selling.Marketing},
	}
	for i, tranche := range input.Tranches {
		fields = append(fields,
			namedValue{fmt.Sprintf("tranches[%d].principal", i), tranche.Principal},
			namedValue{fmt.Sprintf("tranches[%d].ltvPercent", i), tranche.LTVPercent},
			namedValue{fmt.Sprintf("tranches[%d].points", i), tranche.Points},
			namedValue{fmt.Sprintf("tranches[%d].interestRate", i), tranche.InterestRate},
		)
	}
	fields = append(fields, miscFields("financing", input.Financing.Misc)...)
	fields = append(fields, miscFields("holding", input.Holding.Misc)...)
	fields = append(fields, miscFields("buying", input.Buying.Misc)...)
	fields = append(fields, miscFields("selling", input.Selling.Misc)...)
	fields = append(fields, miscFields("deal", input.Misc)...)

	if err := checkFinite(fields); err != nil {
		return err
	}
	if err := checkNonNegative(fields); err != nil {
		return err
	}

	if input.HoldMonths < 0 {
		return fmt.Errorf("holdMonths must not be negative, got %d", input.HoldMonths)
	}
	if len(input.Tranches) > constants.MaxLoanTranches {
		return fmt.Errorf("at most %d financing tranches are supported, got %d",
			constants.MaxLoanTranches, len(input.Tranches))
	}

	return nil
}

// ValidateLoanInput checks a loan underwriting request.
func ValidateLoanInput(input underwrite.LoanInput) error {
	fields := []namedValue{
		{"loanAmount", input.LoanAmount},
		{"propertyValue", input.PropertyValue},
		{"purchasePrice", input.PurchasePrice},
		{"rehabBudget", input.RehabBudget},
		{"monthlyNOI", input.MonthlyNOI},
		{"interestRate", input.InterestRate},
	}
	if err := checkFinite(fields); err != nil {
		return err
	}
	if err := checkNonNegative(fields); err != nil {
		return err
	}
	if input.CreditScore < 0 {
		return fmt.Errorf("creditScore must not be negative, got %d", input.CreditScore)
	}
	return nil
}

// ValidateOutputFormat checks if the output format is one of the supported
// formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}
