package costs

import (
	"math"
	"testing"
)

func TestLineItemResolve(t *testing.T) {
	tests := []struct {
		name          string
		item          LineItem
		purchasePrice float64
		arv           float64
		expected      float64
	}{
		{
			name:          "Flat dollars by default",
			item:          LineItem{Amount: 3000},
			purchasePrice: 200000,
			arv:           400000,
			expected:      3000,
		},
		{
			name:          "Explicit flat mode",
			item:          LineItem{Amount: 1500, Mode: ModeFlat},
			purchasePrice: 200000,
			arv:           400000,
			expected:      1500,
		},
		{
			name:          "Percent of purchase price",
			item:          LineItem{Amount: 0.5, Mode: ModePercent, Base: BasePurchasePrice},
			purchasePrice: 200000,
			arv:           400000,
			expected:      1000,
		},
		{
			name:          "Realtor fee as percent of ARV",
			item:          LineItem{Amount: 6, Mode: ModePercent, Base: BaseARV},
			purchasePrice: 200000,
			arv:           400000,
			expected:      24000,
		},
		{
			name:          "Percent mode with unset base uses purchase price",
			item:          LineItem{Amount: 1, Mode: ModePercent},
			purchasePrice: 200000,
			arv:           400000,
			expected:      2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.item.Resolve(tt.purchasePrice, tt.arv)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("Resolve() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestLoanTrancheResolvedPrincipal(t *testing.T) {
	tests := []struct {
		name          string
		tranche       LoanTranche
		purchasePrice float64
		expected      float64
	}{
		{"Explicit principal", LoanTranche{Principal: 180000}, 200000, 180000},
		{"Derived from LTV percent", LoanTranche{LTVPercent: 90}, 200000, 180000},
		{"Principal wins over LTV", LoanTranche{Principal: 150000, LTVPercent: 90}, 200000, 150000},
		{"Zero tranche", LoanTranche{}, 200000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.tranche.ResolvedPrincipal(tt.purchasePrice)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ResolvedPrincipal() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestFinancingTotal(t *testing.T) {
	tranches := []LoanTranche{
		{Principal: 180000, Points: 2, InterestRate: 10},
	}
	// 180000*0.02 + 180000*0.10/12*6 = 3600 + 9000
	result := FinancingTotal(tranches, FinancingCosts{}, 200000, 6)
	if math.Abs(result-12600) > 0.01 {
		t.Errorf("FinancingTotal() = %.2f, expected 12600", result)
	}
}

func TestFinancingTotalZeroTranche(t *testing.T) {
	tranches := []LoanTranche{
		{Principal: 180000, Points: 2, InterestRate: 10},
		{}, // empty second tranche contributes nothing
		{Points: 3, InterestRate: 12},
	}
	result := FinancingTotal(tranches, FinancingCosts{Origination: 500}, 200000, 6)
	if math.Abs(result-13100) > 0.01 {
		t.Errorf("FinancingTotal() = %.2f, expected 13100", result)
	}
}

func TestFinancingTotalMultipleTranches(t *testing.T) {
	tranches := []LoanTranche{
		{Principal: 150000, Points: 2, InterestRate: 10},
		{Principal: 30000, Points: 1, InterestRate: 12},
	}
	// tranche 1: 3000 + 7500; tranche 2: 300 + 1800
	result := FinancingTotal(tranches, FinancingCosts{Misc: []MiscItem{{Label: "wire fee", Amount: 50}}}, 200000, 6)
	if math.Abs(result-12650) > 0.01 {
		t.Errorf("FinancingTotal() = %.2f, expected 12650", result)
	}
}

func TestHoldingTotal(t *testing.T) {
	tests := []struct {
		name       string
		holding    HoldingCosts
		holdMonths int
		expected   float64
	}{
		{
			name: "Vacant insurance by default",
			holding: HoldingCosts{
				PropertyTaxAnnual:        2400, // 200/mo
				HOAMonthly:               100,
				InsuranceVacantMonthly:   150,
				InsuranceOccupiedMonthly: 80, // collected but not summed
				UtilitiesMonthly:         250,
			},
			holdMonths: 6,
			expected:   4200, // (200+100+150+250)*6
		},
		{
			name: "Occupied insurance mode",
			holding: HoldingCosts{
				InsuranceVacantMonthly:   150,
				InsuranceOccupiedMonthly: 80,
				InsuranceMode:            InsuranceOccupied,
			},
			holdMonths: 6,
			expected:   480,
		},
		{
			name: "Both insurance figures",
			holding: HoldingCosts{
				InsuranceVacantMonthly:   150,
				InsuranceOccupiedMonthly: 80,
				InsuranceMode:            InsuranceBoth,
			},
			holdMonths: 6,
			expected:   1380,
		},
		{
			name: "Zero hold months",
			holding: HoldingCosts{
				PropertyTaxAnnual: 2400,
				HOAMonthly:        100,
			},
			holdMonths: 0,
			expected:   0,
		},
		{
			name: "Misc holding items prorate monthly",
			holding: HoldingCosts{
				Misc: []MiscItem{{Label: "lawn care", Amount: 75}},
			},
			holdMonths: 4,
			expected:   300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.holding.Total(tt.holdMonths)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("Total() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestBuyingTotal(t *testing.T) {
	buying := BuyingCosts{
		EscrowAttorney: 1500,
		TitleInsurance: LineItem{Amount: 0.5, Mode: ModePercent, Base: BasePurchasePrice},
		Misc:           []MiscItem{{Label: "inspection", Amount: 500}},
	}
	// 1500 + 1000 + 500
	result := buying.Total(200000, 400000)
	if math.Abs(result-3000) > 0.01 {
		t.Errorf("Total() = %.2f, expected 3000", result)
	}
}

func TestSellingTotal(t *testing.T) {
	selling := SellingCosts{
		Escrow:      1200,
		Recording:   300,
		RealtorFee:  LineItem{Amount: 6, Mode: ModePercent, Base: BaseARV},
		TransferFee: LineItem{Amount: 1, Mode: ModePercent, Base: BaseARV},
		Warranty:    500,
		Staging:     2000,
		Marketing:   1000,
		Misc:        []MiscItem{{Label: "cleaning", Amount: 300}},
	}
	// 1200+300+24000+4000+500+2000+1000+300
	result := selling.Total(200000, 400000)
	if math.Abs(result-33300) > 0.01 {
		t.Errorf("Total() = %.2f, expected 33300", result)
	}
}

func TestMiscLabelHasNoEffect(t *testing.T) {
	a := MiscTotal([]MiscItem{{Label: "permits", Amount: 400}, {Label: "dumpster", Amount: 600}})
	b := MiscTotal([]MiscItem{{Label: "anything else", Amount: 400}, {Label: "", Amount: 600}})
	if a != b {
		t.Errorf("misc totals diverged on label text: %.2f vs %.2f", a, b)
	}
}
