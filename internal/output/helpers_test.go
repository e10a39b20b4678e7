package output

import (
	"context"
	"testing"
	"time"

	calc "github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/config"
	"github.com/fincalc/projection-engine/internal/domain"
)

var testGeneratedAt = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// buildTestReport runs every calculator on the example configuration.
func buildTestReport(t *testing.T) *domain.ProjectionReport {
	t.Helper()
	cfg := config.NewInputParser().CreateExampleConfiguration()
	report, err := calc.NewEngine().Preview(context.Background(), cfg.CalculatorInputs)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	report.GeneratedAt = testGeneratedAt
	report.Currency = cfg.Currency.Symbol
	report.Assumptions = cfg.GenerateAssumptions()
	return report
}
