package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with one table per calculator.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
	"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionReport
		Symbol      string
		Assumptions []string
		Highlights  []Highlight
	}{r, symbolOf(r), assumptionsOf(r), AnalyzeReport(r)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
