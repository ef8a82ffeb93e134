package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Threat kinds reported by ScanThreats.
const (
	ThreatSQLInjection  = "sql_injection"
	ThreatXSS           = "xss"
	ThreatPathTraversal = "path_traversal"
)

// SecurityError marks input matching a known attack signature. It is a
// distinct type so callers can answer 403 instead of an ordinary 400.
type SecurityError struct {
	Field string
	Kind  string
	Value string
}

func (e *SecurityError) Error() string {
	switch e.Kind {
	case ThreatSQLInjection:
		return fmt.Sprintf("Potential SQL injection detected in field '%s'", e.Field)
	case ThreatXSS:
		return fmt.Sprintf("Potential XSS attempt detected in field '%s'", e.Field)
	default:
		return fmt.Sprintf("Path traversal attempt detected in field '%s'", e.Field)
	}
}

var sqlInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter)\b`),
	regexp.MustCompile(`(--|/\*|\*/)`),
	regexp.MustCompile(`(?i)['"]\s*(or|and)\s*['"]?[^'"]*['"]?\s*=`),
}

var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>`),
	regexp.MustCompile(`(?is)<iframe[^>]*>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)data:text/html`),
}

// ScanThreats screens a string value against the known injection, XSS and
// path traversal signatures. Returns nil when the value is clean.
func ScanThreats(field, value string) *SecurityError {
	for _, p := range sqlInjectionPatterns {
		if p.MatchString(value) {
			return &SecurityError{Field: field, Kind: ThreatSQLInjection, Value: value}
		}
	}
	for _, p := range xssPatterns {
		if p.MatchString(value) {
			return &SecurityError{Field: field, Kind: ThreatXSS, Value: value}
		}
	}
	if strings.Contains(value, "../") || strings.Contains(value, `..\`) {
		return &SecurityError{Field: field, Kind: ThreatPathTraversal, Value: value}
	}
	return nil
}
