// Package validation holds shared field validators for worker inputs.
// JSON schema validation of whole payloads lives in pkg/registry; these
// helpers cover the individual fields workers check before acting on them.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	urlPattern   = regexp.MustCompile(`^(https?)://[^\s/$.?#].[^\s]*$`)
)

// ValidateEmail reports whether the address looks deliverable.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether the number is plausibly dialable.
// Accepts an optional leading + and common separator characters.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateURL reports whether the string is an http(s) URL.
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}

// NormalizePhone strips separator characters so the number can be handed
// to SNS, which wants E.164-ish input.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
