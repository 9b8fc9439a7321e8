package web

// errors.go provides unified error response handling for the web layer.
//
// Every failed request:
//  1. is mapped to an HTTP status by statusFor
//  2. is mapped to a user message and support code via core.MapError
//  3. is logged with the technical error and request id
//  4. gets an ErrorResponse JSON body

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/csvplot/internal/core"
	"github.com/JonMunkholm/csvplot/internal/logging"
)

var (
	errNoFile       = errors.New("no file provided")
	errInvalidForm  = errors.New("invalid upload form")
	errMissingParam = errors.New("missing query parameter")
)

// missingParam reports a required query parameter that was absent or empty.
func missingParam(name string) error {
	return fmt.Errorf("%w: %s", errMissingParam, name)
}

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"user_error", core.FormatUserError(err),
	}
	// Errors without a user-facing mapping are unexpected.
	if status >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request error", args...)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusFor maps an error to its HTTP status code.
//
// Upload validation failures are 400, unreadable CSV content is 500, chart
// requests against missing data or columns are 400.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes),
		errors.Is(err, core.ErrFileTooLarge),
		strings.Contains(err.Error(), "request body too large"):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errNoFile),
		errors.Is(err, errInvalidForm),
		errors.Is(err, errMissingParam),
		errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	switch core.KindOf(err) {
	case core.KindInvalidInput, core.KindNoData, core.KindUnknownColumn:
		return http.StatusBadRequest
	case core.KindBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
