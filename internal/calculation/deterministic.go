package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// calcScale is the number of fractional digits kept by intermediate
// powers and divisions. Results are reproducible bit for bit.
const calcScale = 20

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// powInt raises base to an integer exponent by repeated squaring,
// rounding every product to calcScale. Negative exponents return the
// reciprocal; the caller must not pass a zero base with n < 0.
func powInt(base decimal.Decimal, n int64) decimal.Decimal {
	if n < 0 {
		return one.DivRound(powInt(base, -n), calcScale)
	}
	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(calcScale)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Round(calcScale)
		}
	}
	return result
}

// pctToRate converts a percentage such as 8.5 into 0.085
func pctToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.DivRound(hundred, calcScale)
}

// monthlyRate converts an annual percentage into a monthly rate
func monthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return annualPct.DivRound(hundred.Mul(twelve), calcScale)
}
