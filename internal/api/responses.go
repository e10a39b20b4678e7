package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/internal/ledger"
	"github.com/fincalc/projection-engine/internal/output"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Fields  []*domain.ValidationError `json:"fields,omitempty"`
}

// MetaInfo contains metadata about the response
type MetaInfo struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error codes returned in ErrorInfo.Code
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidJSON       = "INVALID_JSON"
	CodeInvalidQuery      = "INVALID_QUERY"
	CodeNotFound          = "NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeInternal          = "INTERNAL_ERROR"
)

func meta(r *http.Request, now time.Time) *MetaInfo {
	return &MetaInfo{
		RequestID: RequestIDFromContext(r.Context()),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	s.write(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta:    meta(r, s.now()),
	})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, info := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zapError(err), zapRequestID(r))
	} else {
		s.logger.Debug("request rejected", zapError(err), zapRequestID(r))
	}
	s.write(w, status, APIResponse{Error: info, Meta: meta(r, s.now())})
}

func (s *Server) write(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", zapError(err))
	}
}

// decodeError marks a malformed request body
type decodeError struct{ err error }

func (e *decodeError) Error() string { return "invalid request body: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// classify maps an error to its HTTP status and response payload
func classify(err error) (int, *ErrorInfo) {
	var de *decodeError
	switch {
	case errors.As(err, &de):
		return http.StatusBadRequest, &ErrorInfo{Code: CodeInvalidJSON, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest, &ErrorInfo{Code: CodeValidation, Message: err.Error(), Fields: validationFields(err)}
	case errors.Is(err, ledger.ErrInvalidMonth), errors.Is(err, ledger.ErrUnknownRange), errors.Is(err, ledger.ErrUnknownTimeframe):
		return http.StatusBadRequest, &ErrorInfo{Code: CodeInvalidQuery, Message: err.Error()}
	case errors.Is(err, output.ErrUnsupportedFormat):
		return http.StatusBadRequest, &ErrorInfo{Code: CodeUnsupportedFormat, Message: err.Error()}
	case errors.Is(err, ledger.ErrNoTransactions):
		return http.StatusNotFound, &ErrorInfo{Code: CodeNotFound, Message: err.Error()}
	default:
		return http.StatusInternalServerError, &ErrorInfo{Code: CodeInternal, Message: "internal server error"}
	}
}

func validationFields(err error) []*domain.ValidationError {
	var many domain.ValidationErrors
	if errors.As(err, &many) {
		return many
	}
	var one *domain.ValidationError
	if errors.As(err, &one) {
		return []*domain.ValidationError{one}
	}
	return nil
}
