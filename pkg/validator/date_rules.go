package validator

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of HTML date inputs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// truncateDay drops the clock part so comparisons are by calendar day.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PastDate passes for calendar days strictly before now.
func PastDate(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			return truncateDay(value).Before(truncateDay(now))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "date must be in the past",
			TranslationKey: "validation.date_past",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NotFutureDate passes for today and any earlier day.
func NotFutureDate(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !truncateDay(value).After(truncateDay(now))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "date must not be in the future",
			TranslationKey: "validation.date_not_future",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Age returns full years elapsed between birthdate and now.
// The year difference is reduced by one until the birthday has occurred.
func Age(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	return age
}

// MinAge validates minimum age using full calendar arithmetic, not year-only subtraction.
func MinAge(field string, birthdate time.Time, minAge int, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !birthdate.After(now) && Age(birthdate, now) >= minAge
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("minimum age of %d years required", minAge),
			TranslationKey: "validation.min_age",
			TranslationValues: map[string]any{
				"field":   field,
				"min_age": minAge,
			},
		},
	}
}

// ValidBirthdate ensures reasonable birthdate constraints: not future, not older than 150 years.
func ValidBirthdate(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			if value.After(now) {
				return false
			}
			return value.After(now.AddDate(-150, 0, 0))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "birthdate must be a valid date not in the future and not more than 150 years ago",
			TranslationKey: "validation.valid_birthdate",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
