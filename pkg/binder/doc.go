// Package binder parses HTTP request bodies for the handler package.
//
// Binders have the signature func(r *http.Request, v any) error so they can be
// chained with handler.WithBinders. Two binders are provided:
//
//   - Form(maxMemory): application/x-www-form-urlencoded and multipart/form-data. The
//     target must implement FormTarget and receives the raw multi-valued fields
//     and the uploaded file headers (filenames already sanitised).
//   - JSON(): strict JSON decoding (unknown fields rejected, single object,
//     size-limited body).
//
// Binders return ErrBinderNotApplicable for requests they should not handle
// (e.g. Form() on a GET), which handler.Wrap skips silently.
//
// # Usage
//
//	type SubmitRequest struct{ Values form.Values }
//
//	func (r *SubmitRequest) BindForm(values map[string][]string, files map[string][]*multipart.FileHeader) error {
//		...
//	}
//
//	r.Post("/submit", handler.Wrap(h.submit,
//		handler.WithBinders[handler.Context, SubmitRequest](binder.Form(2<<20)),
//	))
//
// # Error Handling
//
//   - ErrUnsupportedMediaType: Content type doesn't match expected type
//   - ErrMissingContentType: Missing Content-Type header
//   - ErrInvalidForm: malformed form or multipart payload; wraps the parse
//     error, so an *http.MaxBytesError stays reachable with errors.As
//   - ErrFailedToParseJSON: malformed JSON payload
package binder
