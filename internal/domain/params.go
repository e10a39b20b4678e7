package domain

import (
	"github.com/shopspring/decimal"
)

// CompoundingFrequencies lists the supported compounding periods per year.
var CompoundingFrequencies = []int{1, 2, 4, 12, 365}

// CompoundParams describes a lump sum growing under periodic compounding
type CompoundParams struct {
	Principal           decimal.Decimal `yaml:"principal" json:"principal" validate:"gte=0"`
	AnnualRatePct       decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct" validate:"gte=0,lte=100"`
	Years               int             `yaml:"years" json:"years" validate:"gte=0,lte=100"`
	CompoundingsPerYear int             `yaml:"compoundings_per_year" json:"compoundings_per_year" validate:"oneof=1 2 4 12 365"`
}

// LoanParams describes a fixed-rate, fully amortizing loan
type LoanParams struct {
	Principal     decimal.Decimal `yaml:"principal" json:"principal" validate:"gte=0"`
	AnnualRatePct decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct" validate:"gte=0,lte=100"`
	TermYears     int             `yaml:"term_years" json:"term_years" validate:"gt=0,lte=50"`
}

// RetirementParams describes savings accumulated until retirement.
// InflationPct is collected and reported, but the year-over-year growth
// applies the nominal ExpectedReturnPct only.
type RetirementParams struct {
	CurrentAge          int             `yaml:"current_age" json:"current_age" validate:"gte=0,ltfield=RetirementAge"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirement_age" validate:"gt=0,lte=120"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution" validate:"gte=0"`
	CurrentSavings      decimal.Decimal `yaml:"current_savings" json:"current_savings" validate:"gte=0"`
	ExpectedReturnPct   decimal.Decimal `yaml:"expected_return_pct" json:"expected_return_pct" validate:"gte=-100,lte=100"`
	InflationPct        decimal.Decimal `yaml:"inflation_pct" json:"inflation_pct" validate:"gte=-50,lte=100"`
}

// Years returns the accumulation horizon
func (p RetirementParams) Years() int {
	return p.RetirementAge - p.CurrentAge
}

// SipParams describes a systematic monthly investment plan
type SipParams struct {
	MonthlyInvestment decimal.Decimal `yaml:"monthly_investment" json:"monthly_investment" validate:"gte=0"`
	Years             int             `yaml:"years" json:"years" validate:"gt=0,lte=100"`
	AnnualReturnPct   decimal.Decimal `yaml:"annual_return_pct" json:"annual_return_pct" validate:"gte=0,lte=100"`
}

// Months returns the number of monthly contributions
func (p SipParams) Months() int {
	return p.Years * 12
}

// AffordabilityParams describes a household's capacity to carry a mortgage
type AffordabilityParams struct {
	AnnualIncome  decimal.Decimal `yaml:"annual_income" json:"annual_income" validate:"gte=0"`
	MonthlyDebts  decimal.Decimal `yaml:"monthly_debts" json:"monthly_debts" validate:"gte=0"`
	DownPayment   decimal.Decimal `yaml:"down_payment" json:"down_payment" validate:"gte=0"`
	AnnualRatePct decimal.Decimal `yaml:"annual_rate_pct" json:"annual_rate_pct" validate:"gte=0,lte=100"`
	TermYears     int             `yaml:"term_years" json:"term_years" validate:"gt=0,lte=50"`
}

// CalculatorInputs bundles optional parameters for each calculator.
// Nil sections are skipped.
type CalculatorInputs struct {
	CompoundInterest  *CompoundParams      `yaml:"compound_interest,omitempty" json:"compound_interest,omitempty"`
	Loan              *LoanParams          `yaml:"loan,omitempty" json:"loan,omitempty"`
	Retirement        *RetirementParams    `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	SIP               *SipParams           `yaml:"sip,omitempty" json:"sip,omitempty"`
	HomeAffordability *AffordabilityParams `yaml:"home_affordability,omitempty" json:"home_affordability,omitempty"`
}

// IsEmpty reports whether no calculator section is set
func (in CalculatorInputs) IsEmpty() bool {
	return in.CompoundInterest == nil && in.Loan == nil && in.Retirement == nil &&
		in.SIP == nil && in.HomeAffordability == nil
}
