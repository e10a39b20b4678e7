package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"FINANCIAL PROJECTION REPORT",
		"Generated: 2024-01-15 09:30",
		"• Loan: fixed 8.5% over 20 years, level monthly payments",
		"Final Amount:       ₹164,530.89",
		"Monthly Payment:    ₹8,678.23",
		"Age 60",
		"Max House Price:     ₹3,843,693.44",
		"• Loan: Interest adds 108.28% to the amount borrowed",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console output, got:\n%s", want, content)
		}
	}
}

func TestConsoleFormatter_FallsBackToDefaultAssumptions(t *testing.T) {
	r := buildTestReport(t)
	r.Assumptions = nil
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), DefaultAssumptions[0])
}

func TestConsoleSummaryFormatter(t *testing.T) {
	out, err := ConsoleSummaryFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Compound Interest: Final=₹164,531 Interest=₹64,531", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Loan: Payment=₹8,678 "), lines[3])
	assert.True(t, strings.HasPrefix(lines[6], "Home Affordability: MaxPrice=₹3,843,693 "), lines[6])
}

func TestConsoleSummaryFormatter_PartialReport(t *testing.T) {
	r := buildTestReport(t)
	r.Loan, r.Retirement, r.SIP, r.HomeAffordability = nil, nil, nil, nil
	out, err := ConsoleSummaryFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(out), "\n"))
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 17)
	assert.Equal(t, "Calculator,Metric,Value", lines[0])
	assert.Equal(t, "compound_interest,final_amount,164530.89", lines[1])
	assert.Equal(t, "loan,monthly_payment,8678.23", lines[3])
	assert.Equal(t, "home_affordability,max_monthly_payment,16000.00", lines[14])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// header + 6 compound + 20 loan + 31 retirement + 11 sip
	require.Len(t, lines, 69)
	assert.Equal(t, "compound_interest,0,Year 0,100000.00,,,", lines[1])
	assert.Equal(t, "loan,1,Year 1,,19902.29,84236.50,980097.71", lines[7])
	assert.Equal(t, "retirement,0,Age 30,100000.00,,,", lines[27])
	assert.Equal(t, "sip,0,Yr 0,0.00,,,", lines[58])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded domain.ProjectionReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.NotNil(t, decoded.Loan)
	assert.Equal(t, "8678.23", decoded.Loan.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "₹", decoded.Currency)
	assert.Len(t, decoded.SIP.YearlySeries, 11)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	for _, id := range []string{"compound-interest", "loan", "retirement", "sip", "home-affordability", "highlights"} {
		assert.Contains(t, content, `<section id="`+id+`">`)
	}
	assert.Contains(t, content, "₹8,678.23")
	assert.Contains(t, content, `id="projection-data"`)
}

func TestHTMLFormatter_OmitsMissingSections(t *testing.T) {
	r := buildTestReport(t)
	r.Loan = nil
	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `<section id="loan">`)
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":      "console",
		"VERBOSE":      "console",
		" summary ":    "console-lite",
		"csv-detailed": "detailed-csv",
		"csv":          "csv",
		"html-report":  "html",
		"json":         "json",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name(), in)
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension(ConsoleFormatter{}))
	assert.Equal(t, "txt", Extension(ConsoleSummaryFormatter{}))
	assert.Equal(t, "csv", Extension(CSVDetailedExporter{}))
	assert.Equal(t, "html", Extension(HTMLFormatter{}))
	assert.Equal(t, "json", Extension(JSONFormatter{}))
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	f := FormatterFunc{ID: "fixed", F: func(*domain.ProjectionReport) ([]byte, error) { return []byte("ok"), nil }}
	name, err := WriteFormatted(f, buildTestReport(t), dir, "txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "projection_report_20240115_093000.txt"), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestWriteFormatted_PropagatesFormatError(t *testing.T) {
	boom := errors.New("boom")
	f := FormatterFunc{ID: "broken", F: func(*domain.ProjectionReport) ([]byte, error) { return nil, boom }}
	_, err := WriteFormatted(f, &domain.ProjectionReport{}, t.TempDir(), "txt")
	assert.ErrorIs(t, err, boom)
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	_, err := GenerateReport(&domain.ProjectionReport{}, "pdf", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "detailed-csv")
}
