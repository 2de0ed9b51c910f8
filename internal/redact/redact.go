// Package redact scrubs sensitive values from strings before they reach logs
// or error responses: connection strings, tokens, credentials, and customer
// email addresses.
package redact

import "regexp"

// Placeholders substituted for matched values.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	JWTPlaceholder        = "[REDACTED_JWT]"
)

var (
	// mongodb:// and mongodb+srv:// URIs with inline credentials
	connURIRegex = regexp.MustCompile(`(?i)mongodb(\+srv)?://[^@\s]+@`)

	// store passwords and API keys passed as key=value or key: value
	credentialRegex = regexp.MustCompile(
		`(?i)(password|passwd|store_passwd|api[_-]?key|secret|token)(['":=\s]+)[^'"&\s]{4,}`,
	)

	// three-part base64url JWTs
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{connURIRegex, CredentialPlaceholder},
		{credentialRegex, KeyPlaceholder},
		{jwtRegex, JWTPlaceholder},
		{emailRegex, EmailPlaceholder},
	}
)

// String redacts sensitive values from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range replacements {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts sensitive values from an error's message. Returns an empty
// string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
