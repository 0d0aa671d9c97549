package validator

import (
	"fmt"
	"slices"
	"strings"
)

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedValues, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

// RequiredChoice passes when at least one non-blank option is selected.
func RequiredChoice(field string, values []string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if strings.TrimSpace(v) != "" {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "at least one option must be selected",
			TranslationKey: "validation.required_choice",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Checked passes when a checkbox was ticked.
func Checked(field string, value bool) Rule {
	return Rule{
		Check: func() bool {
			return value
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be checked",
			TranslationKey: "validation.checked",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
