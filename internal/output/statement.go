package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
)

// statementDateLayout matches how dates read on the transactions page
const statementDateLayout = "Jan 2, 2006"

var statementFormats = map[string]struct {
	ext         string
	contentType string
}{
	"csv":  {"csv", "text/csv; charset=utf-8"},
	"json": {"json", "application/json"},
	"html": {"html", "text/html; charset=utf-8"},
}

// StatementExporter renders a monthly statement as a downloadable document.
type StatementExporter struct {
	// Symbol prefixes amounts in the html export. Empty means the default symbol.
	Symbol string
}

// StatementFormats returns the supported export formats.
func StatementFormats() []string { return []string{"csv", "html", "json"} }

// Export renders st in format (csv, json or html).
func (e StatementExporter) Export(st *domain.Statement, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return e.csv(st)
	case "json":
		return json.MarshalIndent(st, "", "  ")
	case "html":
		return e.html(st)
	default:
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(StatementFormats(), ", "))
	}
}

// ContentType returns the MIME type for a statement format.
func (e StatementExporter) ContentType(format string) string {
	if f, ok := statementFormats[strings.ToLower(strings.TrimSpace(format))]; ok {
		return f.contentType
	}
	return "application/octet-stream"
}

// Filename returns the download name, e.g. transactions-2023-03.csv.
func (e StatementExporter) Filename(st *domain.Statement, format string) string {
	ext := strings.ToLower(strings.TrimSpace(format))
	if f, ok := statementFormats[ext]; ok {
		ext = f.ext
	}
	return fmt.Sprintf("transactions-%s.%s", st.Month, ext)
}

func (e StatementExporter) symbol() string {
	if e.Symbol == "" {
		return money.DefaultSymbol
	}
	return e.Symbol
}

func (e StatementExporter) csv(st *domain.Statement) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Date", "Title", "Category", "Amount"}); err != nil {
		return nil, err
	}
	for _, tx := range st.Transactions {
		row := []string{tx.Date.Format(statementDateLayout), tx.Title, tx.Category, tx.Amount.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"", "Total", intToString(st.Count), st.Total.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var statementTemplate = template.Must(template.New("statement").Funcs(template.FuncMap{
	"curr": FormatCurrency,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th { background: #428bca; color: #fff; }
th, td { border: 1px solid #d1d5db; padding: 4px 8px; text-align: left; }
</style></head>
<body>
<h1>{{.Title}}</h1>
<p>Total Transactions: {{.Count}}</p>
<p>Total Amount: {{curr .Total .Symbol}}</p>
<table>
<tr><th>Date</th><th>Title</th><th>Category</th><th>Amount</th></tr>
{{range .Transactions}}<tr><td>{{.Date.Format "Jan 2, 2006"}}</td><td>{{.Title}}</td><td>{{.Category}}</td><td>{{curr .Amount $.Symbol}}</td></tr>
{{end}}</table>
</body>
</html>
`))

func (e StatementExporter) html(st *domain.Statement) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Statement
		Symbol string
	}{st, e.symbol()}
	if err := statementTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
