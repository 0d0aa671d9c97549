// Package validator provides the low-level rule primitives used by the form
// validator: a Rule couples a boolean Check with translation-friendly error
// metadata, and Apply evaluates any number of rules without short-circuiting,
// collecting every failure into a ValidationErrors slice.
//
// Rules are grouped per concern (`string_rules.go`, `pattern_rules.go`,
// `date_rules.go`, `choice_rules.go`, `format_rules.go`). Every exported helper
// only builds a Rule; there is no package state, so rules are safe to build and
// evaluate from concurrent goroutines.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("full_name", name),
//	    validator.Matches("phone", phone, phoneRe, "mobile number"),
//	    validator.MinAge("dob", dob, 18, now),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // render verrs.First(field) next to the input
//	    }
//	}
//
// Date rules take the reference time explicitly instead of calling time.Now so
// callers can inject a clock.
//
// # Error Handling
//
// ValidationErrors implements error; use ExtractValidationErrors or errors.As to
// get the field-level details back.
package validator
