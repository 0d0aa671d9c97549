package form

import "fmt"

// Outcome is the result of one submit pass.
type Outcome struct {
	Valid   bool
	Results Results
	Values  Values
	Record  *Record
}

// Submit normalises values, validates them and, when every field passes,
// appends exactly one record to ctx.Table. Invalid submissions change
// nothing. The returned error is reserved for failures other than validation.
func Submit(ctx *Context, values Values) (Outcome, error) {
	if ctx == nil || ctx.Rules == nil || ctx.Table == nil {
		return Outcome{}, ErrIncompleteContext
	}

	clean := ctx.Rules.Normalize(values)
	valid, results := ValidateAll(ctx, clean)
	out := Outcome{Valid: valid, Results: results, Values: clean}
	if !valid {
		return out, nil
	}

	rec, err := ctx.Table.Append(func(seq int) (Record, error) {
		return BuildRecord(ctx, clean, seq)
	})
	if err != nil {
		return out, fmt.Errorf("build record: %w", err)
	}
	out.Record = &rec
	return out, nil
}
