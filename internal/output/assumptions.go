package output

import "github.com/fincalc/projection-engine/internal/domain"

// DefaultAssumptions lists the modeling rules common to every calculator.
// Rendered when a report carries no assumptions of its own.
var DefaultAssumptions = []string{
	"Rates are nominal annual percentages",
	"Loan payments are level and due monthly in arrears",
	"SIP contributions are made at the start of each month",
	"Home affordability applies the 28% housing and 36% total-debt ratios",
}

func assumptionsOf(r *domain.ProjectionReport) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}
