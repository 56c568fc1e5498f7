// Package output renders analysis results for the CLI in pretty, CSV, and
// JSON formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/flipforge/flip-forecast/pkg/amortize"
	"github.com/flipforge/flip-forecast/pkg/deal"
	"github.com/flipforge/flip-forecast/pkg/format"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
)

// flipRows enumerates the metrics in presentation order. The currency
// renderer differs by destination: symbols for humans, bare numerics for CSV.
func flipRows(m deal.Metrics, currency func(float64) string) []struct {
	Label string
	Value string
} {
	return []struct {
		Label string
		Value string
	}{
		{"Maximum allowable offer", currency(m.MaximumAllowableOffer)},
		{"Financing costs", currency(m.FinancingTotal)},
		{"Holding costs", currency(m.HoldingTotal)},
		{"Buying costs", currency(m.BuyingTotal)},
		{"Selling costs", currency(m.SellingTotal)},
		{"Misc costs", currency(m.MiscTotal)},
		{"Total cost", currency(m.TotalCost)},
		{"Net profit", currency(m.NetProfit)},
		{"Total borrowed", currency(m.TotalBorrowed)},
		{"Committed capital", currency(m.CommittedCapital)},
		{"Down payment required", currency(m.DownPaymentRequired)},
		{"Purchase+rehab ROI", format.Percent(m.PurchaseRehabROI)},
		{"Total-cost ROI", format.Percent(m.TotalCostROI)},
		{"Cash ROI", format.Percent(m.CashROI)},
		{"Annualized cash-on-cash", format.Percent(m.AnnualizedCashOnCash)},
		{"Annualized total-capital return", format.Percent(m.AnnualizedTotalCapitalReturn)},
		{"Repair cost per sq ft", currency(m.CostPerSqFt)},
	}
}

// PrettyFlip writes a human-readable table for a flip analysis.
func PrettyFlip(w io.Writer, address string, analysis underwrite.FlipAnalysis) {
	title := "flip analysis"
	if address != "" {
		title = fmt.Sprintf("flip analysis for %s", address)
	}
	fmt.Fprintf(w, "--- Results for %s ---\n", title)
	for _, row := range flipRows(analysis.Metrics, format.Currency) {
		fmt.Fprintf(w, "%-32s| %s\n", row.Label, row.Value)
	}
	fmt.Fprintf(w, "%-32s| %s\n", "Verdict", analysis.Verdict)
}

// CsvFlip writes the flip analysis in comma-separated value format. Currency
// cells carry no symbol so the file loads into spreadsheets as numbers.
func CsvFlip(w io.Writer, analysis underwrite.FlipAnalysis) {
	labels := make([]string, 0)
	values := make([]string, 0)
	for _, row := range flipRows(analysis.Metrics, format.NumericCurrency) {
		labels = append(labels, fmt.Sprintf("%q", row.Label))
		values = append(values, fmt.Sprintf("%q", row.Value))
	}
	labels = append(labels, `"Verdict"`)
	values = append(values, fmt.Sprintf("%q", analysis.Verdict))
	fmt.Fprintf(w, "%s\n%s\n", strings.Join(labels, ","), strings.Join(values, ","))
}

// JSONFlip writes the flip analysis as indented JSON.
func JSONFlip(w io.Writer, analysis underwrite.FlipAnalysis) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(analysis)
}

// PrettyLoan writes a human-readable table for a loan underwriting result.
func PrettyLoan(w io.Writer, result underwrite.LoanResult) {
	fmt.Fprintf(w, "--- Underwriting result for %s ---\n", result.Product)
	fmt.Fprintf(w, "%-32s| %s\n", "Interest rate", format.Percent(result.InterestRate))
	fmt.Fprintf(w, "%-32s| %s\n", "Monthly payment", format.Currency(result.MonthlyPayment))
	fmt.Fprintf(w, "%-32s| %s\n", "Total interest", format.Currency(result.TotalInterest))
	fmt.Fprintf(w, "%-32s| %s\n", "LTV", format.Percent(result.LTV))
	fmt.Fprintf(w, "%-32s| %s\n", "LTC", format.Percent(result.LTC))
	fmt.Fprintf(w, "%-32s| %.2f\n", "DSCR", result.DSCR)
	if len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%-32s| none\n", "Warnings")
		return
	}
	for i, warning := range result.Warnings {
		label := ""
		if i == 0 {
			label = "Warnings"
		}
		fmt.Fprintf(w, "%-32s| %s\n", label, warning)
	}
}

// JSONLoan writes the loan result as indented JSON.
func JSONLoan(w io.Writer, result underwrite.LoanResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// PrettySchedule writes a month-by-month amortization schedule table.
func PrettySchedule(w io.Writer, schedule []amortize.Payment) {
	fmt.Fprintln(w, "--- Amortization schedule ---")
	fmt.Fprintf(w, "%5s | %14s | %14s | %14s | %14s\n",
		"Month", "Payment", "Principal", "Interest", "Remaining")
	for i, p := range schedule {
		fmt.Fprintf(w, "%5d | %14s | %14s | %14s | %14s\n",
			i+1,
			format.NumericCurrency(p.Payment),
			format.NumericCurrency(p.Principal),
			format.NumericCurrency(p.Interest),
			format.NumericCurrency(p.RemainingPrincipal))
	}
}

// JSONSchedule writes an amortization schedule as indented JSON.
func JSONSchedule(w io.Writer, schedule []amortize.Payment) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schedule)
}
