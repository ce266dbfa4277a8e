// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs a zap logger with the error pages so handlers report
// failures in one call: the cause goes to the log, the user sees a friendly
// page.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders the failure page.
// userMsg and backURL are currently unused by the page but kept in the
// signature so call sites state what the user should see.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, op string, err error, userMsg, backURL string) {
	e.log.Error(op,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderServerError(w, r)
}

// LogBadRequest logs a malformed request at warn level and renders the
// forbidden page with the given message.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, op string, err error, userMsg, backURL string) {
	e.log.Warn(op,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	RenderForbidden(w, r, userMsg, backURL)
}
