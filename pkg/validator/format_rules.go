package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail accepts a bare RFC 5322 address whose domain has at least two
// non-empty labels. Display names ("An <an@example.com>") are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool { return isBareEmail(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func isBareEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	local, domain, _ := strings.Cut(value, "@")
	if local == "" {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}
