package form

import (
	"time"
)

const (
	DefaultMinAge    = 18
	DefaultMaxUpload = 2 << 20
)

// Context carries everything a validation or submit pass depends on: the
// rule set, the record table, the clock and predicate settings.
type Context struct {
	Rules     *RuleSet
	Table     *Table
	Now       func() time.Time
	MinAge    int
	MaxUpload int64
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithTable shares an existing table instead of starting an empty one.
func WithTable(t *Table) ContextOption {
	return func(c *Context) {
		if t != nil {
			c.Table = t
		}
	}
}

// WithClock overrides the wall clock used for date predicates.
func WithClock(now func() time.Time) ContextOption {
	return func(c *Context) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithMinAge sets the age required by the adult predicate.
func WithMinAge(years int) ContextOption {
	return func(c *Context) {
		if years > 0 {
			c.MinAge = years
		}
	}
}

// WithMaxUpload sets the largest accepted upload in bytes.
func WithMaxUpload(n int64) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.MaxUpload = n
		}
	}
}

// NewContext returns a Context for rules with an empty table, the system
// clock and default limits.
func NewContext(rules *RuleSet, opts ...ContextOption) *Context {
	c := &Context{
		Rules:     rules,
		Now:       time.Now,
		MinAge:    DefaultMinAge,
		MaxUpload: DefaultMaxUpload,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Table == nil {
		c.Table = NewTable()
	}
	return c
}

// Today returns the current calendar day in UTC.
func (c *Context) Today() time.Time {
	y, m, d := c.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c *Context) minAge() int {
	if c == nil || c.MinAge <= 0 {
		return DefaultMinAge
	}
	return c.MinAge
}

func (c *Context) now() time.Time {
	if c != nil && c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
