package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fincalc/projection-engine/internal/domain"
)

// CSVDetailedExporter writes every yearly series point, one row per calculator and year.
// Loan rows carry the cumulative columns and leave Value empty.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(r *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Calculator", "Year", "Label", "Value", "CumulativePrincipal", "CumulativeInterest", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	writePoints := func(name string, series []domain.YearlyPoint) error {
		for _, p := range series {
			if err := w.Write([]string{name, intToString(p.Year), p.Label, p.Value.StringFixed(2), "", "", ""}); err != nil {
				return err
			}
		}
		return nil
	}

	if ci := r.CompoundInterest; ci != nil {
		if err := writePoints("compound_interest", ci.YearlySeries); err != nil {
			return nil, err
		}
	}
	if l := r.Loan; l != nil {
		for _, p := range l.YearlySeries {
			row := []string{"loan", intToString(p.Year), "Year " + intToString(p.Year), "",
				p.CumulativePrincipal.StringFixed(2), p.CumulativeInterest.StringFixed(2), p.Balance.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	if rt := r.Retirement; rt != nil {
		if err := writePoints("retirement", rt.YearlySeries); err != nil {
			return nil, err
		}
	}
	if s := r.SIP; s != nil {
		if err := writePoints("sip", s.YearlySeries); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
