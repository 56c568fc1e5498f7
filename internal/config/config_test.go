package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `deal:
  address: 123 Maple St
  squareFootage: 1800
  afterRepairValue: 400000
  repairCost: 60000
  purchasePrice: 200000
  holdMonths: 6
  tranches:
    - principal: 180000
      points: 2
      interestRate: 10
  holding:
    propertyTaxAnnual: 7200
    insuranceVacantMonthly: 400
    utilitiesMonthly: 500
  buying:
    escrowAttorney: 3000
  selling:
    realtorFee:
      amount: 6
      mode: percent
      base: arv
    escrow: 2000
    staging: 2000
    marketing: 1000
    misc:
      - label: final cleaning
        amount: 300
loan:
  product: DSCR Rental 30yr
  loanAmount: 400000
  propertyValue: 550000
  monthlyNOI: 3600
  creditScore: 760
logging:
  level: debug
  format: console
output:
  format: json
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deal.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}

	if conf.Deal.Address != "123 Maple St" {
		t.Errorf("Deal.Address = %q, expected %q", conf.Deal.Address, "123 Maple St")
	}
	if conf.Deal.AfterRepairValue != 400000 {
		t.Errorf("Deal.AfterRepairValue = %v, expected 400000", conf.Deal.AfterRepairValue)
	}
	if len(conf.Deal.Tranches) != 1 || conf.Deal.Tranches[0].Principal != 180000 {
		t.Errorf("Deal.Tranches = %+v, expected one 180000 tranche", conf.Deal.Tranches)
	}
	if conf.Deal.Selling.RealtorFee.Mode != "percent" {
		t.Errorf("RealtorFee.Mode = %q, expected percent", conf.Deal.Selling.RealtorFee.Mode)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "json" {
		t.Errorf("Output.Format = %q, expected json", conf.Output.Format)
	}

	if conf.Loan == nil {
		t.Fatal("Loan request not parsed")
	}
	if conf.Loan.Product != "DSCR Rental 30yr" {
		t.Errorf("Loan.Product = %q, expected DSCR Rental 30yr", conf.Loan.Product)
	}
	if conf.Loan.Input.LoanAmount != 400000 {
		t.Errorf("Loan.Input.LoanAmount = %v, expected 400000", conf.Loan.Input.LoanAmount)
	}
	if conf.Loan.Input.CreditScore != 760 {
		t.Errorf("Loan.Input.CreditScore = %v, expected 760", conf.Loan.Input.CreditScore)
	}
}

func TestLoadConfigurationMiscLabelsRoundTrip(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}

	misc := conf.Deal.Selling.Misc
	if len(misc) != 1 {
		t.Fatalf("Selling.Misc = %+v, expected one item", misc)
	}
	if misc[0].Label != "final cleaning" || misc[0].Amount != 300 {
		t.Errorf("misc item = %+v, expected {final cleaning 300}", misc[0])
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeTempConfig(t, "deal:\n  purchasePrice: 100000\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}

	if conf.Deal.HoldMonths != 6 {
		t.Errorf("HoldMonths = %d, expected default 6", conf.Deal.HoldMonths)
	}
	if len(conf.Products) == 0 {
		t.Error("Products empty, expected default catalog")
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfiguration() = nil error for missing file, expected error")
	}
}

func TestFindProduct(t *testing.T) {
	conf := &Configuration{}
	conf.Normalize()

	product, err := conf.FindProduct("Bridge 12mo")
	if err != nil {
		t.Fatalf("FindProduct() error: %v", err)
	}
	if !product.InterestOnly {
		t.Error("Bridge 12mo should be interest-only")
	}

	if _, err := conf.FindProduct("No Such Product"); err == nil {
		t.Error("FindProduct() = nil error for unknown product, expected error")
	}
}

func TestDefaultProductsSane(t *testing.T) {
	for _, product := range DefaultProducts() {
		if product.MinAmount <= 0 || product.MaxAmount <= product.MinAmount {
			t.Errorf("product %s has degenerate amount bounds: [%v, %v]",
				product.Name, product.MinAmount, product.MaxAmount)
		}
		if product.MaxLTV <= 0 || product.MaxLTV > 100 {
			t.Errorf("product %s has implausible MaxLTV %v", product.Name, product.MaxLTV)
		}
		if product.TermMonths <= 0 {
			t.Errorf("product %s has non-positive term", product.Name)
		}
		for _, tier := range product.RateTiers {
			if tier.MinRate > tier.MaxRate {
				t.Errorf("product %s tier %d has inverted rates", product.Name, tier.MinCredit)
			}
		}
	}
}
