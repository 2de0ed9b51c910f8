// Package validation implements the tutor-request payload sanitization and
// validation pipeline. All functions operate on raw decoded JSON values
// (map[string]interface{}, string, float64, ...) and never fail: malformed
// input degrades to empty strings, absent numbers, or error strings in the
// validation result rather than panics or returned errors.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// emailPattern accepts the usual local@domain-with-dot shape. It is
// intentionally loose; deliverability is the mail provider's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonNumericPattern = regexp.MustCompile(`[^0-9.]`)

// SanitizeString returns the trimmed string form of value. Numeric input is
// stringified first; any other type yields an empty string.
func SanitizeString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return strings.TrimSpace(strconv.Itoa(v))
	case int64:
		return strings.TrimSpace(strconv.FormatInt(v, 10))
	default:
		return ""
	}
}

// NormalizeEmail sanitizes and lowercases value, then checks it against the
// email shape. Returns an empty string when the result is not a valid email.
func NormalizeEmail(value interface{}) string {
	email := strings.ToLower(SanitizeString(value))
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// CoerceNumber extracts a finite number from value. Strings are stripped of
// every character that is not a digit or decimal point before parsing, so
// inputs like "5,000 tk" coerce to 5000. The second return value reports
// whether a finite number could be extracted.
func CoerceNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		numericPortion := nonNumericPattern.ReplaceAllString(v, "")
		if numericPortion == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(numericPortion, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ToPositiveNumber applies CoerceNumber and additionally requires the result
// to be strictly greater than zero.
func ToPositiveNumber(value interface{}) (float64, bool) {
	num, ok := CoerceNumber(value)
	if !ok || num <= 0 {
		return 0, false
	}
	return num, true
}

// NormalizeSubjects accepts either an ordered list (each element sanitized,
// empties dropped) or a comma-separated string. Any other input type yields
// an empty list.
func NormalizeSubjects(value interface{}) []string {
	var raw []interface{}

	switch v := value.(type) {
	case nil:
		return nil
	case []interface{}:
		raw = v
	case []string:
		raw = make([]interface{}, len(v))
		for i, s := range v {
			raw[i] = s
		}
	case string:
		for _, piece := range strings.Split(v, ",") {
			raw = append(raw, piece)
		}
	default:
		return nil
	}

	subjects := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := SanitizeString(item); s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}
