package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration represents the complete input configuration
type Configuration struct {
	Currency         CurrencySettings `yaml:"currency" json:"currency"`
	CalculatorInputs `yaml:",inline"`
	Server           ServerSettings `yaml:"server" json:"server"`
	// Transactions seeds the ledger. When empty the built-in sample set is used.
	Transactions []Transaction `yaml:"transactions,omitempty" json:"transactions,omitempty"`
}

// CurrencySettings controls how amounts are rendered
type CurrencySettings struct {
	Symbol string `yaml:"symbol" json:"symbol"`
}

// ServerSettings configures the HTTP adapter
type ServerSettings struct {
	Addr           string   `yaml:"addr" json:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`
}

// GenerateAssumptions creates the assumptions list from the calculator inputs actually provided
func (in CalculatorInputs) GenerateAssumptions() []string {
	var out []string
	if in.CompoundInterest != nil {
		out = append(out, fmt.Sprintf("Compound interest: %s%% nominal, compounded %d times a year",
			pct(in.CompoundInterest.AnnualRatePct), in.CompoundInterest.CompoundingsPerYear))
	}
	if in.Loan != nil {
		out = append(out, fmt.Sprintf("Loan: fixed %s%% over %d years, level monthly payments",
			pct(in.Loan.AnnualRatePct), in.Loan.TermYears))
	}
	if in.Retirement != nil {
		out = append(out,
			fmt.Sprintf("Retirement: %s%% nominal return, contributions added at each year end", pct(in.Retirement.ExpectedReturnPct)),
			fmt.Sprintf("Retirement: %s%% inflation reported only, not applied to growth", pct(in.Retirement.InflationPct)))
	}
	if in.SIP != nil {
		out = append(out, fmt.Sprintf("SIP: %s%% annual return, contributions at the start of each month", pct(in.SIP.AnnualReturnPct)))
	}
	if in.HomeAffordability != nil {
		out = append(out, fmt.Sprintf("Affordability: 28%%/36%% rule at %s%% over %d years",
			pct(in.HomeAffordability.AnnualRatePct), in.HomeAffordability.TermYears))
	}
	return out
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(1)
}
