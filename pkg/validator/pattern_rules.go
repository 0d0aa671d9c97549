package validator

import (
	"regexp"
	"strings"
)

// Matches checks value against a compiled pattern. Blank values and a nil
// pattern never match; description names the pattern in the message.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			return re != nil && strings.TrimSpace(value) != "" && re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must match " + description + " pattern",
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"description": description,
			},
		},
	}
}
