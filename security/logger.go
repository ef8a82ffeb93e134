// Package security provides the structured audit log for the API: request
// usage lines, rejected input, attack signatures and rate-limit hits, all
// emitted as JSON so the sink stays machine-readable and append-only.
package security

import (
	"io"
	"log/slog"
	"time"
)

// maxLoggedValueLength caps how much of an offending input reaches the log.
const maxLoggedValueLength = 100

type Logger struct {
	log *slog.Logger
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{log: slog.New(slog.NewJSONHandler(w, nil))}
}

// NopLogger discards everything. Used in tests.
func NopLogger() *Logger {
	return NewLogger(io.Discard)
}

func (l *Logger) APIRequest(requestID, method, endpoint, clientIP string, status int, elapsed time.Duration) {
	l.log.Info("api_request",
		"request_id", requestID,
		"method", method,
		"endpoint", endpoint,
		"client_ip", clientIP,
		"status", status,
		"elapsed_ms", float64(elapsed.Microseconds())/1000,
	)
}

func (l *Logger) InvalidInput(clientIP, field, value, reason string) {
	l.log.Warn("invalid_input",
		"client_ip", clientIP,
		"field", field,
		"value", truncate(value),
		"reason", reason,
	)
}

func (l *Logger) SecurityViolation(clientIP, kind, field, value string) {
	l.log.Error("security_violation",
		"client_ip", clientIP,
		"kind", kind,
		"field", field,
		"value", truncate(value),
	)
}

func (l *Logger) RateLimitExceeded(clientIP string) {
	l.log.Warn("rate_limit_exceeded", "client_ip", clientIP)
}

func (l *Logger) DatabaseError(err error) {
	l.log.Error("database_error", "error", err.Error())
}

func truncate(value string) string {
	if len(value) > maxLoggedValueLength {
		return value[:maxLoggedValueLength]
	}
	return value
}
