package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearlyPoint is one labelled sample of a yearly series, ready for charting
type YearlyPoint struct {
	Year  int             `json:"year"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CompoundResult is the outcome of a compound interest projection
type CompoundResult struct {
	Params          CompoundParams  `json:"params"`
	FinalAmount     decimal.Decimal `json:"final_amount"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	TimesCompounded int             `json:"times_compounded"`
	FrequencyLabel  string          `json:"frequency_label"`
	YearlySeries    []YearlyPoint   `json:"yearly_series"`
}

// AmortizationPoint is a yearly snapshot of a loan schedule.
// Principal and interest are cumulative from the first payment.
type AmortizationPoint struct {
	Year                int             `json:"year"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	Balance             decimal.Decimal `json:"balance"`
}

// AmortizationRow is a single month of a loan schedule
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// LoanResult is the outcome of a loan amortization
type LoanResult struct {
	Params         LoanParams          `json:"params"`
	MonthlyPayment decimal.Decimal     `json:"monthly_payment"`
	TotalPayment   decimal.Decimal     `json:"total_payment"`
	TotalInterest  decimal.Decimal     `json:"total_interest"`
	YearlySeries   []AmortizationPoint `json:"yearly_series"`
}

// RetirementResult is the outcome of a retirement projection
type RetirementResult struct {
	Params          RetirementParams `json:"params"`
	Years           int              `json:"years"`
	FinalValue      decimal.Decimal  `json:"final_value"`
	TotalInvestment decimal.Decimal  `json:"total_investment"`
	TotalReturns    decimal.Decimal  `json:"total_returns"`
	// InflationAdjustedValue expresses FinalValue in today's money. It is
	// informational only and does not feed back into the growth series.
	InflationAdjustedValue decimal.Decimal `json:"inflation_adjusted_value"`
	YearlySeries           []YearlyPoint   `json:"yearly_series"`
}

// SipResult is the outcome of a SIP projection
type SipResult struct {
	Params          SipParams       `json:"params"`
	Months          int             `json:"months"`
	FutureValue     decimal.Decimal `json:"future_value"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalReturns    decimal.Decimal `json:"total_returns"`
	YearlySeries    []YearlyPoint   `json:"yearly_series"`
}

// Slice is a labelled share of a whole
type Slice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// AffordabilityResult is the outcome of a home affordability check
type AffordabilityResult struct {
	Params            AffordabilityParams `json:"params"`
	MonthlyIncome     decimal.Decimal     `json:"monthly_income"`
	MaxMonthlyPayment decimal.Decimal     `json:"max_monthly_payment"`
	MaxLoanAmount     decimal.Decimal     `json:"max_loan_amount"`
	MaxHousePrice     decimal.Decimal     `json:"max_house_price"`
	Breakdown         []Slice             `json:"breakdown"`
}

// ProjectionReport gathers the results of every calculator that was run
type ProjectionReport struct {
	GeneratedAt       time.Time            `json:"generated_at"`
	Currency          string               `json:"currency"`
	CompoundInterest  *CompoundResult      `json:"compound_interest,omitempty"`
	Loan              *LoanResult          `json:"loan,omitempty"`
	Retirement        *RetirementResult    `json:"retirement,omitempty"`
	SIP               *SipResult           `json:"sip,omitempty"`
	HomeAffordability *AffordabilityResult `json:"home_affordability,omitempty"`
	Assumptions       []string             `json:"assumptions,omitempty"`
}
