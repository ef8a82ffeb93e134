// Package validation implements the declarative field-rule engine shared by
// every resource. A Schema maps field names to rules; Validate walks the
// schema over a decoded JSON payload, rejects invalid fields with per-field
// messages, screens string values for injection signatures, and returns
// sanitized (HTML-entity-escaped) values ready for persistence.
package validation

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type Type int

const (
	String Type = iota
	Int
	Bool
	URL
)

type Rule struct {
	Type     Type
	Required bool
	MinLen   int
	MaxLen   int
	Min      int
	Max      int
	HasMin   bool
	HasMax   bool
	Pattern  *regexp.Regexp
	// PatternMessage overrides the generic pattern failure message.
	PatternMessage string
	OneOf          []string
}

type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered rule table. Order matters only for deterministic
// error reporting.
type Schema []Field

// Partial returns a copy of the schema with every Required flag cleared,
// for PUT payloads where each field is independently optional.
func (s Schema) Partial() Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		f.Rule.Required = false
		out[i] = f
	}
	return out
}

// FieldError is a single per-field validation failure. Value keeps the raw
// offending input so callers can log it (truncated) with context.
type FieldError struct {
	Field   string
	Message string
	Value   string
}

func (e FieldError) Error() string { return e.Message }

// Errors aggregates every failed field in one pass.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// Messages returns the per-field messages for the response envelope.
func (e Errors) Messages() []string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return msgs
}

// Validate checks every schema field present in the payload and returns the
// sanitized values keyed by field name. Fields absent from the payload are
// skipped unless required. A security-pattern hit aborts immediately with a
// *SecurityError; ordinary failures are collected into Errors.
func (s Schema) Validate(payload map[string]any) (map[string]any, error) {
	clean := make(map[string]any, len(s))
	var errs Errors

	for _, f := range s {
		raw, ok := payload[f.Name]
		if !ok || raw == nil {
			if f.Rule.Required {
				errs = append(errs, FieldError{
					Field:   f.Name,
					Message: fmt.Sprintf("Field '%s' is required", f.Name),
				})
			}
			continue
		}

		if str, isStr := raw.(string); isStr {
			if threat := ScanThreats(f.Name, str); threat != nil {
				return nil, threat
			}
		}

		value, err := validateField(f.Name, f.Rule, raw)
		if err != nil {
			var fe FieldError
			if !asFieldError(err, &fe) {
				return nil, err
			}
			errs = append(errs, fe)
			continue
		}
		clean[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return clean, nil
}

func asFieldError(err error, out *FieldError) bool {
	fe, ok := err.(FieldError)
	if ok {
		*out = fe
	}
	return ok
}

func validateField(name string, rule Rule, raw any) (any, error) {
	switch rule.Type {
	case String:
		return validateString(name, rule, raw)
	case Int:
		return validateInt(name, rule, raw)
	case Bool:
		return validateBool(name, raw)
	case URL:
		return validateURL(name, rule, raw)
	default:
		return nil, fmt.Errorf("unknown validation type for field %q", name)
	}
}

func validateString(name string, rule Rule, raw any) (any, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be a string", name), stringify(raw)}
	}

	value = strings.TrimSpace(value)

	if value == "" && (rule.Required || rule.MinLen > 0) {
		if rule.Required {
			return nil, FieldError{name, fmt.Sprintf("Field '%s' is required", name), value}
		}
		return nil, FieldError{name, fmt.Sprintf("Field '%s' cannot be empty", name), value}
	}
	if rule.MinLen > 1 && len(value) < rule.MinLen {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be at least %d characters", name, rule.MinLen), value}
	}
	if rule.MaxLen > 0 && len(value) > rule.MaxLen {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' cannot exceed %d characters", name, rule.MaxLen), value}
	}
	if rule.Pattern != nil && value != "" && !rule.Pattern.MatchString(value) {
		msg := rule.PatternMessage
		if msg == "" {
			msg = fmt.Sprintf("Field '%s' contains invalid characters", name)
		}
		return nil, FieldError{name, msg, value}
	}
	if len(rule.OneOf) > 0 {
		found := false
		for _, allowed := range rule.OneOf {
			if value == allowed {
				found = true
				break
			}
		}
		if !found {
			return nil, FieldError{name,
				fmt.Sprintf("Field '%s' must be one of: %s", name, strings.Join(rule.OneOf, ", ")), value}
		}
	}

	return html.EscapeString(value), nil
}

func validateInt(name string, rule Rule, raw any) (any, error) {
	n, ok := coerceInt(raw)
	if !ok {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be a number", name), stringify(raw)}
	}
	if rule.HasMin && n < rule.Min {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be at least %d", name, rule.Min), stringify(raw)}
	}
	if rule.HasMax && n > rule.Max {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' cannot exceed %d", name, rule.Max), stringify(raw)}
	}
	return n, nil
}

func coerceInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// validateBool normalizes the accepted truthy/falsy literal set:
// true/false, 0/1, "0"/"1", "true"/"false".
func validateBool(name string, raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case float64:
		if v == 1 {
			return true, nil
		}
		if v == 0 {
			return false, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return nil, FieldError{name, fmt.Sprintf("Field '%s' must be a boolean value", name), stringify(raw)}
}

func validateURL(name string, rule Rule, raw any) (any, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be a string", name), stringify(raw)}
	}

	value = strings.TrimSpace(value)
	if rule.MaxLen > 0 && len(value) > rule.MaxLen {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' cannot exceed %d characters", name, rule.MaxLen), value}
	}

	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must be a valid URL", name), value}
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, FieldError{name, fmt.Sprintf("Field '%s' must use http or https scheme", name), value}
	}

	return value, nil
}

func stringify(raw any) string {
	return fmt.Sprintf("%v", raw)
}
