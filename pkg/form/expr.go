package form

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Variables visible to rule expressions:
//
//	value    string        first submitted string
//	values   list(string)  all non-blank submitted strings
//	checked  bool          checkbox state
//	today    string        current day, YYYY-MM-DD
//	age      int           full years since value when it is a date, else -1
var exprEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("value", cel.StringType),
		cel.Variable("values", cel.ListType(cel.StringType)),
		cel.Variable("checked", cel.BoolType),
		cel.Variable("today", cel.StringType),
		cel.Variable("age", cel.IntType),
	)
})

func compileExpr(expr string) (cel.Program, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: expression required", ErrInvalidExpression)
	}
	env, err := exprEnv()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q must evaluate to bool, got %s", ErrInvalidExpression, expr, ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return prog, nil
}

func exprActivation(ctx *Context, v Value) map[string]any {
	today := ctx.Today()
	age := int64(-1)
	if d, err := validator.ParseDate(v.Text()); err == nil && !d.After(today) {
		age = int64(validator.Age(d, today))
	}
	return map[string]any{
		"value":   v.Text(),
		"values":  v.List(),
		"checked": v.Checked(),
		"today":   today.Format(validator.DateLayout),
		"age":     age,
	}
}

// exprRule evaluates prog against v. Evaluation errors count as a failed check.
func exprRule(prog cel.Program, expr string) Predicate {
	return func(ctx *Context, field string, v Value) validator.Rule {
		return validator.Rule{
			Check: func() bool {
				out, _, err := prog.Eval(exprActivation(ctx, v))
				if err != nil {
					return false
				}
				ok, isBool := out.Value().(bool)
				return isBool && ok
			},
			Error: validator.ValidationError{
				Field:          field,
				Message:        "is invalid",
				TranslationKey: "validation.expression",
				TranslationValues: map[string]any{
					"field": field,
					"expr":  expr,
				},
			},
		}
	}
}
