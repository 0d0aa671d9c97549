package form

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Result is the verdict for one field.
type Result struct {
	Valid   bool           `json:"valid"`
	Message string         `json:"message,omitempty"`
	Key     string         `json:"key,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// Results maps field names to verdicts.
type Results map[string]Result

// Valid reports whether every field passed.
func (r Results) Valid() bool {
	for _, res := range r {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Err returns the failures as validator.ValidationErrors ordered by field
// name, or nil when every field passed.
func (r Results) Err() error {
	var errs validator.ValidationErrors
	for _, field := range slices.Sorted(maps.Keys(r)) {
		res := r[field]
		if res.Valid {
			continue
		}
		errs.Add(validator.ValidationError{
			Field:             field,
			Message:           res.Message,
			TranslationKey:    res.Key,
			TranslationValues: res.Params,
		})
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func resultOf(err error, field string) Result {
	if e, ok := validator.ExtractValidationErrors(err).First(field); ok {
		return Result{Message: e.Message, Key: e.TranslationKey, Params: e.TranslationValues}
	}
	return Result{Valid: true}
}

// rule turns v into the validator rule for r. Empty values fail required
// fields with the rule message and pass optional ones.
func (r compiledRule) rule(ctx *Context, v Value) validator.Rule {
	if v.IsEmpty(r.Format) {
		return validator.Optional(r.Optional, validator.Required(r.Field, "").WithMessage(r.Message))
	}
	return r.check(ctx, r.Field, v).WithMessage(r.Message)
}

// ValidateField checks one value against the rule for field in ctx.Rules.
// Values are checked as given; use RuleSet.Normalize first for raw input.
// A field without a rule, or a ctx without rules, is invalid.
func ValidateField(ctx *Context, v Value, field string) Result {
	if ctx == nil || ctx.Rules == nil {
		return Result{Message: ErrIncompleteContext.Error()}
	}
	i, ok := ctx.Rules.index[field]
	if !ok {
		return Result{Message: "unknown field", Key: "validation.unknown_field", Params: map[string]any{"field": field}}
	}
	return resultOf(validator.Apply(ctx.Rules.rules[i].rule(ctx, v)), field)
}

// ValidateAll checks every rule of ctx.Rules. It never stops early: each
// field gets its own verdict and the returned flag is their conjunction.
// Missing values are treated as empty. A ctx without rules is never valid.
func ValidateAll(ctx *Context, values Values) (bool, Results) {
	if ctx == nil || ctx.Rules == nil {
		return false, Results{}
	}
	rules := make([]validator.Rule, len(ctx.Rules.rules))
	for i, r := range ctx.Rules.rules {
		rules[i] = r.rule(ctx, values[r.Field])
	}

	err := validator.Apply(rules...)
	results := make(Results, len(ctx.Rules.rules))
	for _, r := range ctx.Rules.rules {
		results[r.Field] = resultOf(err, r.Field)
	}
	return err == nil, results
}
