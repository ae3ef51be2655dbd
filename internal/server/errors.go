package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mathieu/devis-analyzer/internal/analysis"
	"github.com/mathieu/devis-analyzer/internal/extraction"
)

// RequestError indicates a malformed upload request.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// HTTPStatus maps pipeline errors to response codes. Upload and content
// problems are the client's fault; quota exhaustion maps to 429 so clients
// can back off; everything else is a server-side failure.
func HTTPStatus(err error) int {
	var reqErr *RequestError
	var typeErr *extraction.UnsupportedTypeError
	var emptyErr *extraction.EmptyContentError
	var shortErr *extraction.InsufficientContentError
	var quotaErr *analysis.QuotaExceededError
	var modelErr *analysis.ModelUnavailableError

	switch {
	case errors.As(err, &reqErr),
		errors.As(err, &typeErr),
		errors.As(err, &emptyErr),
		errors.As(err, &shortErr):
		return http.StatusBadRequest
	case errors.As(err, &quotaErr):
		return http.StatusTooManyRequests
	case errors.As(err, &modelErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes the error envelope. The underlying detail is only
// exposed outside production.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	body := map[string]any{
		"error":   true,
		"message": err.Error(),
	}
	if !s.cfg.Production {
		if cause := errors.Unwrap(err); cause != nil {
			body["details"] = cause.Error()
		}
	}
	s.jsonResponse(w, HTTPStatus(err), body)
}

func badRequest(format string, args ...any) error {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}
