package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
	Meta    *MetaInfo       `json:"meta"`
}

func newTestServer(t *testing.T, logger *zap.Logger) *Server {
	t.Helper()
	book := ledger.NewBook(nil, ledger.WithClock(func() time.Time {
		return time.Date(2023, time.March, 16, 12, 0, 0, 0, time.UTC)
	}))
	settings := Settings{
		Server:   domain.ServerSettings{Addr: "127.0.0.1:0", AllowedOrigins: []string{"*"}},
		Currency: domain.CurrencySettings{Symbol: "₹"},
	}
	return NewServer(calculation.NewEngine(), book, settings, logger, NewMetrics("test"))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthCheck(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"healthy","transactions":5}`, string(env.Data))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	require.NotNil(t, env.Meta)
	assert.Equal(t, id, env.Meta.RequestID)
}

func TestRequestIDPropagated(t *testing.T) {
	h := newTestServer(t, nil).Router()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestCalculatorEndpoints(t *testing.T) {
	h := newTestServer(t, nil).Router()

	t.Run("compound", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/calculators/compound",
			`{"principal":1000,"annual_rate_pct":5,"years":2,"compoundings_per_year":1}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res domain.CompoundResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
		assert.True(t, res.FinalAmount.Equal(decimal.RequireFromString("1102.5")), res.FinalAmount.String())
	})

	t.Run("loan", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/calculators/loan",
			`{"principal":"1000000","annual_rate_pct":"8.5","term_years":20}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res domain.LoanResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
		assert.Equal(t, "8678.23", res.MonthlyPayment.StringFixed(2))
		assert.Len(t, res.YearlySeries, 20)
	})

	t.Run("sip", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/calculators/sip",
			`{"monthly_investment":1000,"years":1,"annual_return_pct":12}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res domain.SipResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
		assert.Equal(t, "12809.33", res.FutureValue.StringFixed(2))
	})

	t.Run("affordability", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/calculators/affordability",
			`{"annual_income":1200000,"monthly_debts":20000,"down_payment":2000000,"annual_rate_pct":8.5,"term_years":20}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res domain.AffordabilityResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
		assert.Equal(t, "3843693.44", res.MaxHousePrice.StringFixed(2))
	})

	t.Run("retirement", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/calculators/retirement",
			`{"current_age":30,"retirement_age":60,"monthly_contribution":10000,"current_savings":100000,"expected_return_pct":8,"inflation_pct":3}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res domain.RetirementResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
		assert.Equal(t, 30, res.Years)
		assert.Equal(t, "14600251.02", res.FinalValue.StringFixed(2))
	})
}

func TestCalculatorValidationError(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodPost, "/api/v1/calculators/loan",
		`{"principal":1000,"annual_rate_pct":5,"term_years":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
	require.NotEmpty(t, env.Error.Fields)
	assert.Equal(t, "term_years", env.Error.Fields[0].Field)
}

func TestCalculatorInvalidJSON(t *testing.T) {
	h := newTestServer(t, nil).Router()

	for name, body := range map[string]string{
		"malformed":     `{"principal":`,
		"unknown field": `{"principal":1000,"rate":5}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/calculators/compound", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, CodeInvalidJSON, env.Error.Code)
		})
	}
}

func TestPreview(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodPost, "/api/v1/preview",
		`{"loan":{"principal":1000000,"annual_rate_pct":8.5,"term_years":20},"sip":{"monthly_investment":5000,"years":10,"annual_return_pct":12}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &report))
	assert.Equal(t, "₹", report.Currency)
	require.NotNil(t, report.Loan)
	require.NotNil(t, report.SIP)
	assert.Nil(t, report.Retirement)
	assert.NotEmpty(t, report.Assumptions)
}

func TestPreviewDeflationOverLongHorizon(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodPost, "/api/v1/preview",
		`{"retirement":{"current_age":30,"retirement_age":100,"monthly_contribution":10000,"current_savings":100000,"expected_return_pct":8,"inflation_pct":-50}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &report))
	require.NotNil(t, report.Retirement)
	assert.Equal(t, 70, report.Retirement.Years)
	assert.True(t, report.Retirement.InflationAdjustedValue.GreaterThan(report.Retirement.FinalValue))

	// the server keeps serving after the long-horizon request
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestPreviewRejectsInflationBelowFloor(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodPost, "/api/v1/preview",
		`{"retirement":{"current_age":30,"retirement_age":100,"monthly_contribution":10000,"current_savings":100000,"expected_return_pct":8,"inflation_pct":-90}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
}

func TestPreviewRejectsEmptyInputs(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodPost, "/api/v1/preview", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decodeEnvelope(t, rec).Error.Code)
}

func TestListTransactions(t *testing.T) {
	h := newTestServer(t, nil).Router()

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"all", "", []string{"Grocery Shopping", "Netflix Subscription", "Gas Station", "Restaurant Dinner", "Electric Bill"}},
		{"category", "?category=Food", []string{"Grocery Shopping", "Restaurant Dinner"}},
		{"amount bounds", "?min=50&max=100", []string{"Grocery Shopping", "Restaurant Dinner"}},
		{"this week", "?range=this-week", []string{"Restaurant Dinner", "Electric Bill"}},
		{"no match", "?category=Travel", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/v1/transactions"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var txs []domain.Transaction
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &txs))
			got := make([]string, len(txs))
			for i, tx := range txs {
				got[i] = tx.Title
			}
			assert.Equal(t, tt.titles, got)
		})
	}
}

func TestListTransactionsBadQuery(t *testing.T) {
	h := newTestServer(t, nil).Router()

	tests := []struct {
		query string
		code  string
	}{
		{"?range=fortnight", CodeInvalidQuery},
		{"?min=abc", CodeValidation},
		{"?min=500&max=100", CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/v1/transactions"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeEnvelope(t, rec).Error.Code)
		})
	}
}

func TestMonthsAndCategories(t *testing.T) {
	h := newTestServer(t, nil).Router()

	rec := do(t, h, http.MethodGet, "/api/v1/transactions/months", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["2023-03"]`, string(decodeEnvelope(t, rec).Data))

	rec = do(t, h, http.MethodGet, "/api/v1/transactions/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &cats))
	assert.Contains(t, cats, "Food")
	assert.Contains(t, cats, "Utilities")
}

func TestSpending(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodGet, "/api/v1/transactions/spending", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var spend []domain.CategorySpend
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &spend))
	require.Len(t, spend, 4)
	assert.Equal(t, "Food", spend[0].Category)
	assert.Equal(t, "164.00", spend[0].Amount.StringFixed(2))
	assert.Equal(t, "47.61", spend[0].Percentage.StringFixed(2))
}

func TestStatementExport(t *testing.T) {
	h := newTestServer(t, nil).Router()

	t.Run("csv download", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-03&format=csv", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="transactions-2023-03.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), ",Total,5,344.49")
	})

	t.Run("html download", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-03&format=HTML", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Total Transactions: 5")
	})

	t.Run("json envelope without format", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-03", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var st domain.Statement
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &st))
		assert.Equal(t, "Transaction Report - March 2023", st.Title)
		assert.Equal(t, 5, st.Count)
	})

	t.Run("empty month", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-04&format=csv", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, CodeNotFound, decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("bad month", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=March", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidQuery, decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("unsupported format", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-03&format=pdf", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeUnsupportedFormat, decodeEnvelope(t, rec).Error.Code)
	})
}

func TestInsights(t *testing.T) {
	h := newTestServer(t, nil).Router()

	rec := do(t, h, http.MethodGet, "/api/v1/insights?timeframe=weekly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var spend []domain.CategorySpend
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &spend))
	require.Len(t, spend, 6)
	assert.True(t, spend[0].Amount.Equal(decimal.NewFromInt(175)))
	assert.True(t, spend[0].Percentage.Equal(decimal.NewFromInt(30)))

	rec = do(t, h, http.MethodGet, "/api/v1/insights?timeframe=yearly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidQuery, decodeEnvelope(t, rec).Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, nil).Router()

	do(t, h, http.MethodPost, "/api/v1/calculators/sip", `{"monthly_investment":1000,"years":1,"annual_return_pct":12}`)
	do(t, h, http.MethodPost, "/api/v1/calculators/sip", `{"monthly_investment":1000,"years":0,"annual_return_pct":12}`)
	do(t, h, http.MethodGet, "/api/v1/transactions/statement?month=2023-03&format=csv", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `test_calculations_total{calculator="sip",outcome="ok"} 1`)
	assert.Contains(t, body, `test_calculations_total{calculator="sip",outcome="rejected"} 1`)
	assert.Contains(t, body, `test_statements_exported_total{format="csv"} 1`)
	assert.Contains(t, body, `test_http_requests_total{method="POST",route="/api/v1/calculators/sip",status="200"} 1`)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := newTestServer(t, zap.New(core)).Router()

	do(t, h, http.MethodGet, "/healthz", "")

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "api", entries[0].LoggerName)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t, nil).Router()
	rec := do(t, h, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
