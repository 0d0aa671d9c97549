package form

import (
	"fmt"
	"slices"
	"strings"
)

// Kind selects the validation strategy of a field rule.
type Kind string

const (
	KindRegex     Kind = "regex"
	KindPredicate Kind = "predicate"
	KindNonEmpty  Kind = "nonempty"
)

// Format tells how a value is read and displayed.
type Format string

const (
	FormatText Format = "text"
	FormatDay  Format = "date"
	FormatList Format = "list"
	FormatBool Format = "bool"
	FormatFile Format = "file"
)

// TextInputs are the controls a plain text field may ask for through Input.
var TextInputs = []string{"text", "email", "tel", "url", "number", "password", "search", "textarea"}

// FieldRule is the declarative description of one form field.
//
// Exactly one strategy must be configured: Pattern for KindRegex, Predicate or
// Expr (not both) for KindPredicate, none for KindNonEmpty. Options, when set,
// restrict the accepted values on top of that strategy and are rendered as
// radios (text) or checkboxes (list). Input picks the control of a plain text
// field; other formats derive theirs.
type FieldRule struct {
	Field     string   `yaml:"field" json:"field"`
	Label     string   `yaml:"label,omitempty" json:"label,omitempty"`
	Kind      Kind     `yaml:"kind" json:"kind"`
	Pattern   string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Predicate string   `yaml:"predicate,omitempty" json:"predicate,omitempty"`
	Expr      string   `yaml:"expr,omitempty" json:"expr,omitempty"`
	Message   string   `yaml:"message,omitempty" json:"message,omitempty"`
	Optional  bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
	Format    Format   `yaml:"format,omitempty" json:"format,omitempty"`
	Sanitize  []string `yaml:"sanitize,omitempty" json:"sanitize,omitempty"`
	Hidden    bool     `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Options   []string `yaml:"options,omitempty" json:"options,omitempty"`
	Input     string   `yaml:"input,omitempty" json:"input,omitempty"`
}

// DisplayLabel returns Label, falling back to the field name.
func (r FieldRule) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Field
}

func (r FieldRule) format() Format {
	if r.Format == "" {
		return FormatText
	}
	return r.Format
}

// check requires exactly one validation strategy per rule.
func (r FieldRule) check() error {
	if strings.TrimSpace(r.Field) == "" {
		return fmt.Errorf("%w: field name is required", ErrInvalidRule)
	}

	switch r.format() {
	case FormatText, FormatDay, FormatList, FormatBool, FormatFile:
	default:
		return fmt.Errorf("%w: %s: unknown format %q", ErrInvalidRule, r.Field, r.Format)
	}

	if len(r.Options) > 0 && r.format() != FormatText && r.format() != FormatList {
		return fmt.Errorf("%w: %s: options need text or list format", ErrInvalidRule, r.Field)
	}

	if r.Input != "" {
		if r.format() != FormatText || len(r.Options) > 0 {
			return fmt.Errorf("%w: %s: input needs a plain text field", ErrInvalidRule, r.Field)
		}
		if !slices.Contains(TextInputs, r.Input) {
			return fmt.Errorf("%w: %s: unknown input %q", ErrInvalidRule, r.Field, r.Input)
		}
	}

	hasPattern := r.Pattern != ""
	hasPredicate := r.Predicate != ""
	hasExpr := r.Expr != ""

	switch r.Kind {
	case KindRegex:
		if !hasPattern || hasPredicate || hasExpr {
			return fmt.Errorf("%w: %s: regex rule needs a pattern and nothing else", ErrInvalidRule, r.Field)
		}
	case KindPredicate:
		if hasPattern || hasPredicate == hasExpr {
			return fmt.Errorf("%w: %s: predicate rule needs exactly one of predicate or expr", ErrInvalidRule, r.Field)
		}
	case KindNonEmpty:
		if hasPattern || hasPredicate || hasExpr {
			return fmt.Errorf("%w: %s: nonempty rule takes no pattern, predicate or expr", ErrInvalidRule, r.Field)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRule, r.Field, r.Kind)
	}
	return nil
}
