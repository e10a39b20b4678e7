package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertNear checks |got-want| <= tol
func assertNear(t *testing.T, want string, got decimal.Decimal, tol string) {
	t.Helper()
	assert.Truef(t, got.Sub(dec(want)).Abs().LessThanOrEqual(dec(tol)),
		"expected %s ± %s, got %s", want, tol, got.StringFixed(6))
}
