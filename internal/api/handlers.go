package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/internal/ledger"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func zapError(err error) zap.Field { return zap.Error(err) }

func zapRequestID(r *http.Request) zap.Field {
	return zap.String("requestID", RequestIDFromContext(r.Context()))
}

// maxBodyBytes caps calculator request bodies
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &decodeError{err: err}
	}
	return nil
}

// calculator adapts one engine operation into a POST handler
func calculator[P any, R any](s *Server, name string, run func(P) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params P
		if err := decode(w, r, &params); err != nil {
			s.respondError(w, r, err)
			return
		}
		res, err := run(params)
		s.metrics.observeCalculation(name, err)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, res)
	}
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var in domain.CalculatorInputs
	if err := decode(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	report, err := s.engine.Preview(r.Context(), in)
	s.metrics.observeCalculation("preview", err)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	report.Currency = s.settings.Currency.Symbol
	report.Assumptions = in.GenerateAssumptions()
	s.respondJSON(w, r, http.StatusOK, report)
}

// filterFromQuery reads category, min, max and range query parameters.
// Absent parameters leave the matching bound open.
func filterFromQuery(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	f := ledger.Filter{Category: q.Get("category")}

	rng, err := ledger.ParseDateRange(q.Get("range"))
	if err != nil {
		return f, err
	}
	f.Range = rng

	if f.MinAmount, err = amountParam(q.Get("min"), "min_amount"); err != nil {
		return f, err
	}
	if f.MaxAmount, err = amountParam(q.Get("max"), "max_amount"); err != nil {
		return f, err
	}
	return f, nil
}

func amountParam(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	m, err := money.NewMoneyFromString(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a number, got %q", raw)
	}
	return &m.Decimal, nil
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	txs, err := s.book.List(f)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	s.respondJSON(w, r, http.StatusOK, txs)
}

func (s *Server) listMonths(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, s.book.AvailableMonths())
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, s.book.Categories())
}

func (s *Server) spending(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	totals, err := s.book.SpendingByCategory(f)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, totals)
}

// statement writes the monthly export as a file download. Without a
// format it returns the statement inside the usual JSON envelope.
func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st, err := s.book.MonthlyStatement(q.Get("month"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		s.respondJSON(w, r, http.StatusOK, st)
		return
	}
	body, err := s.exporter.Export(st, format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.metrics.Statements.WithLabelValues(format).Inc()

	w.Header().Set("Content-Type", s.exporter.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exporter.Filename(st, format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write statement", zapError(err), zapRequestID(r))
	}
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	spend, err := ledger.Insights(r.URL.Query().Get("timeframe"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, spend)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"transactions": s.book.Len(),
	})
}
