package form

import "errors"

var (
	ErrInvalidRule       = errors.New("invalid field rule")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrUnknownPredicate  = errors.New("unknown predicate")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrUnknownSanitizer  = errors.New("unknown sanitizer")
	ErrUnknownRuleSet    = errors.New("unknown rule set")
	ErrFailedToLoadRules = errors.New("failed to load rules")
	ErrInvalidValue      = errors.New("invalid value")
	ErrIncompleteContext = errors.New("form context is missing its rule set or table")
)
