// Package handler provides typed HTTP handlers with HTML, DataStar and JSON
// responses.
//
// A handler receives a Context and a request value already bound by one or
// more binders, and returns a Response. Context also exposes the request id
// and locale set by the router middleware:
//
//	submit := func(ctx handler.Context, req form.Submission) handler.Response {
//		out, err := form.Submit(fctx, req.Values)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		...
//	}
//
//	r.Post("/submit", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, form.Submission](binder.Form()),
//		handler.WithErrorHandler[handler.Context, form.Submission](errHandler),
//	))
//
// # Responses
//
// Templ, TemplPartial and TemplMulti render templ components. Requests coming
// from the DataStar client (see IsDataStar) receive Server-Sent Events that
// patch the targeted elements; regular requests receive plain HTML.
// WithStatus overrides the status code of regular responses, e.g. 422 for a
// form re-rendered with inline errors. Redirect issues 303 See Other or a
// client-side redirect event. JSON and JSONError render the
// {"data": ..., "error": ...} envelope.
//
// # Errors
//
// Binding and rendering errors go to the configured ErrorHandler.
// NewErrorHandler renders an error page or a toast patch, NewJSONErrorHandler
// a JSON error. Both map errors to status codes: HTTPError carries its own,
// validator.ValidationErrors yields 422, binder media-type errors 415, an
// oversized body (http.MaxBytesError) 413, other binder errors 400 and
// anything else 500. Every error is logged with Context.RequestID.
package handler
