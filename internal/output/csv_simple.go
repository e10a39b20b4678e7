package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVSummarizer implements the summary CSV output (one row per headline metric).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

type metric struct {
	name  string
	value decimal.Decimal
}

func (c CSVSummarizer) Format(r *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Calculator", "Metric", "Value"}); err != nil {
		return nil, err
	}
	for _, block := range summaryMetrics(r) {
		for _, m := range block.metrics {
			if err := w.Write([]string{block.calculator, m.name, m.value.StringFixed(2)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

type metricBlock struct {
	calculator string
	metrics    []metric
}

// summaryMetrics lists headline figures in a fixed calculator order.
func summaryMetrics(r *domain.ProjectionReport) []metricBlock {
	var out []metricBlock
	if ci := r.CompoundInterest; ci != nil {
		out = append(out, metricBlock{"compound_interest", []metric{
			{"final_amount", ci.FinalAmount},
			{"total_interest", ci.TotalInterest},
		}})
	}
	if l := r.Loan; l != nil {
		out = append(out, metricBlock{"loan", []metric{
			{"monthly_payment", l.MonthlyPayment},
			{"total_payment", l.TotalPayment},
			{"total_interest", l.TotalInterest},
		}})
	}
	if rt := r.Retirement; rt != nil {
		out = append(out, metricBlock{"retirement", []metric{
			{"final_value", rt.FinalValue},
			{"total_investment", rt.TotalInvestment},
			{"total_returns", rt.TotalReturns},
			{"inflation_adjusted_value", rt.InflationAdjustedValue},
		}})
	}
	if s := r.SIP; s != nil {
		out = append(out, metricBlock{"sip", []metric{
			{"future_value", s.FutureValue},
			{"total_investment", s.TotalInvestment},
			{"total_returns", s.TotalReturns},
		}})
	}
	if a := r.HomeAffordability; a != nil {
		out = append(out, metricBlock{"home_affordability", []metric{
			{"monthly_income", a.MonthlyIncome},
			{"max_monthly_payment", a.MaxMonthlyPayment},
			{"max_loan_amount", a.MaxLoanAmount},
			{"max_house_price", a.MaxHousePrice},
		}})
	}
	return out
}
