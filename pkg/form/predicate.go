package form

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Predicate turns a submitted value into a validation rule. Predicates are
// only called for non-empty values; emptiness is handled by the rule set.
type Predicate func(ctx *Context, field string, v Value) validator.Rule

// Predicates is a registry of named predicates.
type Predicates map[string]Predicate

// DefaultPredicates returns a fresh registry with the built-in predicates:
//
//	adult       date of birth at least Context.MinAge years ago
//	birthdate   plausible date of birth (not future, not older than 150 years)
//	past_date   date strictly before today
//	not_future  today or earlier
//	checked     checkbox ticked
//	choice      at least one option selected
//	email       RFC 5322 address without display name
//	image       image upload within Context.MaxUpload
func DefaultPredicates() Predicates {
	return Predicates{
		"adult":      adult,
		"birthdate":  birthdate,
		"past_date":  pastDate,
		"not_future": notFuture,
		"checked":    checked,
		"choice":     choice,
		"email":      email,
		"image":      image,
	}
}

// Names returns the registered predicate names, sorted.
func (p Predicates) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

func invalidDate(field string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return false },
		Error: validator.ValidationError{
			Field:          field,
			Message:        "must be a valid date (YYYY-MM-DD)",
			TranslationKey: "validation.date_format",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func adult(ctx *Context, field string, v Value) validator.Rule {
	birth, err := validator.ParseDate(v.Text())
	if err != nil {
		return invalidDate(field)
	}
	return validator.MinAge(field, birth, ctx.minAge(), ctx.Today())
}

func birthdate(ctx *Context, field string, v Value) validator.Rule {
	birth, err := validator.ParseDate(v.Text())
	if err != nil {
		return invalidDate(field)
	}
	return validator.ValidBirthdate(field, birth, ctx.Today())
}

func pastDate(ctx *Context, field string, v Value) validator.Rule {
	d, err := validator.ParseDate(v.Text())
	if err != nil {
		return invalidDate(field)
	}
	return validator.PastDate(field, d, ctx.Today())
}

func notFuture(ctx *Context, field string, v Value) validator.Rule {
	d, err := validator.ParseDate(v.Text())
	if err != nil {
		return invalidDate(field)
	}
	return validator.NotFutureDate(field, d, ctx.Today())
}

func checked(_ *Context, field string, v Value) validator.Rule {
	return validator.Checked(field, v.Checked())
}

func choice(_ *Context, field string, v Value) validator.Rule {
	return validator.RequiredChoice(field, v.Strings)
}

func email(_ *Context, field string, v Value) validator.Rule {
	return validator.ValidEmail(field, v.Text())
}

func image(ctx *Context, field string, v Value) validator.Rule {
	limit := int64(DefaultMaxUpload)
	if ctx != nil && ctx.MaxUpload > 0 {
		limit = ctx.MaxUpload
	}
	return validator.Rule{
		Check: func() bool {
			if v.FileErr != nil || v.File == nil {
				return false
			}
			return v.File.IsImage() && v.File.Size <= limit
		},
		Error: validator.ValidationError{
			Field:          field,
			Message:        "must be an image (JPEG, PNG, GIF, WebP or BMP)",
			TranslationKey: "validation.image",
			TranslationValues: map[string]any{
				"field":     field,
				"max_bytes": limit,
			},
		},
	}
}
