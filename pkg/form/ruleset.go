package form

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const (
	DefaultYesLabel = "Yes"
	DefaultNoLabel  = "No"
)

// RuleSet is a compiled, immutable list of field rules. It is safe for
// concurrent use.
type RuleSet struct {
	name     string
	title    string
	yesLabel string
	noLabel  string
	rules    []compiledRule
	index    map[string]int
}

type compiledRule struct {
	FieldRule
	check Predicate
	clean func(string) string
}

type ruleSetOptions struct {
	title      string
	yesLabel   string
	noLabel    string
	predicates Predicates
}

// RuleSetOption configures NewRuleSet.
type RuleSetOption func(*ruleSetOptions)

// WithTitle sets the heading shown above the form.
func WithTitle(title string) RuleSetOption {
	return func(o *ruleSetOptions) {
		o.title = title
	}
}

// WithBoolLabels sets how checkbox values are displayed in records.
func WithBoolLabels(yes, no string) RuleSetOption {
	return func(o *ruleSetOptions) {
		if yes != "" {
			o.yesLabel = yes
		}
		if no != "" {
			o.noLabel = no
		}
	}
}

// WithPredicates replaces the predicate registry used to resolve named
// predicates.
func WithPredicates(p Predicates) RuleSetOption {
	return func(o *ruleSetOptions) {
		if p != nil {
			o.predicates = p
		}
	}
}

// NewRuleSet validates and compiles rules. Every problem is reported, joined
// into one error: malformed rules, duplicate fields, bad patterns, unknown
// predicates or sanitizers, and expressions that do not compile to bool.
func NewRuleSet(name string, rules []FieldRule, opts ...RuleSetOption) (*RuleSet, error) {
	o := ruleSetOptions{
		yesLabel:   DefaultYesLabel,
		noLabel:    DefaultNoLabel,
		predicates: DefaultPredicates(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	set := &RuleSet{
		name:     name,
		title:    o.title,
		yesLabel: o.yesLabel,
		noLabel:  o.noLabel,
		rules:    make([]compiledRule, 0, len(rules)),
		index:    make(map[string]int, len(rules)),
	}

	var errs []error
	for _, r := range rules {
		if err := r.check(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := set.index[r.Field]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateField, r.Field))
			continue
		}
		cr, err := compileRule(r, o.predicates)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.index[r.Field] = len(set.rules)
		set.rules = append(set.rules, cr)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("rule set %q: %w", name, errors.Join(errs...))
	}
	return set, nil
}

func compileRule(r FieldRule, predicates Predicates) (compiledRule, error) {
	cr := compiledRule{FieldRule: r}
	if r.Format == "" {
		cr.Format = FormatText
	}

	cleaners := []func(string) string{sanitizer.Text}
	for _, name := range r.Sanitize {
		fn, ok := sanitizer.Lookup(name)
		if !ok {
			return cr, fmt.Errorf("%w: %s: %q", ErrUnknownSanitizer, r.Field, name)
		}
		cleaners = append(cleaners, fn)
	}
	cr.clean = sanitizer.Compose(cleaners...)

	switch r.Kind {
	case KindRegex:
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return cr, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, r.Field, err)
		}
		cr.check = regexCheck(re, cr.Format)
	case KindPredicate:
		if r.Expr != "" {
			prog, err := compileExpr(r.Expr)
			if err != nil {
				return cr, fmt.Errorf("%s: %w", r.Field, err)
			}
			cr.check = exprRule(prog, r.Expr)
			break
		}
		p, ok := predicates[r.Predicate]
		if !ok {
			return cr, fmt.Errorf("%w: %s: %q", ErrUnknownPredicate, r.Field, r.Predicate)
		}
		cr.check = p
	case KindNonEmpty:
		cr.check = nonEmptyCheck(cr.Format)
	}
	if len(r.Options) > 0 {
		cr.check = withOptions(cr.check, r.Options)
	}
	return cr, nil
}

// withOptions additionally requires every submitted item to be one of options.
func withOptions(next Predicate, options []string) Predicate {
	return func(ctx *Context, field string, v Value) validator.Rule {
		rule := next(ctx, field, v)
		inner := rule.Check
		allowed := make([]validator.Rule, 0, len(v.Strings))
		for _, item := range v.List() {
			allowed = append(allowed, validator.InList(field, item, options))
		}
		rule.Check = func() bool {
			return validator.Apply(allowed...) == nil && inner != nil && inner()
		}
		return rule
	}
}

// regexCheck matches the text value, or every selected item of a list.
func regexCheck(re *regexp.Regexp, f Format) Predicate {
	return func(_ *Context, field string, v Value) validator.Rule {
		if f != FormatList {
			return validator.Matches(field, v.Text(), re, re.String())
		}
		items := v.List()
		rule := validator.Matches(field, "", re, re.String())
		rule.Check = func() bool {
			for _, item := range items {
				if !re.MatchString(item) {
					return false
				}
			}
			return len(items) > 0
		}
		return rule
	}
}

func nonEmptyCheck(f Format) Predicate {
	return func(_ *Context, field string, v Value) validator.Rule {
		rule := validator.Required(field, v.Text())
		rule.Check = func() bool { return !v.IsEmpty(f) }
		return rule
	}
}

// Name returns the rule set name.
func (s *RuleSet) Name() string { return s.name }

// Title returns the form heading, falling back to the name.
func (s *RuleSet) Title() string {
	if s.title != "" {
		return s.title
	}
	return s.name
}

// BoolLabels returns the record labels for checked and unchecked boxes.
func (s *RuleSet) BoolLabels() (yes, no string) { return s.yesLabel, s.noLabel }

// Len returns the number of rules.
func (s *RuleSet) Len() int { return len(s.rules) }

// Rules returns the field rules in declaration order.
func (s *RuleSet) Rules() []FieldRule {
	out := make([]FieldRule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.FieldRule
	}
	return out
}

// Fields returns the field names in declaration order.
func (s *RuleSet) Fields() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Field
	}
	return out
}

// Rule returns the rule for field.
func (s *RuleSet) Rule(field string) (FieldRule, bool) {
	i, ok := s.index[field]
	if !ok {
		return FieldRule{}, false
	}
	return s.rules[i].FieldRule, true
}

// Normalize returns a copy of values with every text item passed through the
// field's sanitizer chain (NFC, control character removal and trimming, then
// the rule's own sanitizers). List values also lose blank and repeated items.
// Fields without a rule are dropped.
func (s *RuleSet) Normalize(values Values) Values {
	out := make(Values, len(s.rules))
	for _, r := range s.rules {
		v, ok := values[r.Field]
		if !ok {
			continue
		}
		if len(v.Strings) > 0 {
			v.Strings = sanitizer.MapStrings(v.Strings, r.clean)
		}
		if r.format() == FormatList {
			v.Strings = sanitizer.CleanStringSlice(v.Strings)
		}
		out[r.Field] = v
	}
	return out
}
