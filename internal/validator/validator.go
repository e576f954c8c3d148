package validator

import (
	"net/url"
	"strings"
)

// DefaultScheme is assumed for inputs entered without one, so
// "example.com" is validated and scanned as "https://example.com".
const DefaultScheme = "https"

// InvalidURLReason is the single user-facing rejection message.
const InvalidURLReason = "enter a valid website URL"

// ValidationError reports that user input is not a scannable URL.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate classifies free-text input as a scannable URL. On success
// it returns the normalized, scheme-qualified target. It checks
// syntax only: no network access, no reachability probing.
func Validate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &ValidationError{Input: input, Reason: InvalidURLReason}
	}

	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		candidate = DefaultScheme + "://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", &ValidationError{Input: input, Reason: InvalidURLReason}
	}
	// url.Parse tolerates authorities no browser would resolve.
	if strings.ContainsAny(u.Host, " \t") {
		return "", &ValidationError{Input: input, Reason: InvalidURLReason}
	}
	if !plausibleHostname(u.Hostname()) {
		return "", &ValidationError{Input: input, Reason: InvalidURLReason}
	}

	return u.String(), nil
}

// plausibleHostname requires a dotted name (a registrable domain) or
// localhost, so bare words like "notaurl" are rejected.
func plausibleHostname(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	if !strings.Contains(hostname, ".") {
		return false
	}
	return !strings.HasPrefix(hostname, ".") && !strings.HasSuffix(hostname, ".")
}
