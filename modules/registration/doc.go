// Package registration serves a rule-driven registration form.
//
// The page shows the form and the table of accepted records. A post to
// /submit validates every field in one pass; invalid submissions come back
// with inline errors (422, or a DataStar patch of the form), valid ones append
// exactly one row to the in-memory table. The same pass is available as JSON
// on /api/submissions.
package registration
