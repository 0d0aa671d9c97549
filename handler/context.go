package handler

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Context is the per-request value handed to a HandlerFunc. It is the
// request's context.Context plus the request, the writer and the values the
// router middleware stored for this request.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	IsDataStar() bool
	// RequestID is the id assigned by requestid.Middleware, or "".
	RequestID() string
	// Locale is the language resolved by i18n.Middleware, or "".
	Locale() string
}

// NewContext binds w and r into a Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{Context: r.Context(), w: w, r: r}
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (c *requestContext) Request() *http.Request              { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *requestContext) IsDataStar() bool                    { return IsDataStar(c.r) }
func (c *requestContext) RequestID() string                   { return requestid.FromContext(c.Context) }
func (c *requestContext) Locale() string                      { return i18n.Locale(c.Context) }
