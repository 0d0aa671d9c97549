// Package form validates registration-style form submissions against
// declarative field rules and materialises valid submissions as display
// records.
//
// A RuleSet is built once from FieldRule data (usually loaded from YAML) and
// holds exactly one validation strategy per field: a regular expression, a
// predicate (named, or a CEL expression), or a plain non-empty check. Locale
// specifics such as Vietnamese name capitalisation or mobile prefixes live in
// the rule data, not in code.
//
// Every operation takes an explicit *Context holding the rule set, the record
// table and the clock; nothing is read from package state.
//
// # Usage
//
//	sets, err := form.DefaultRuleSets()
//	...
//	fctx := form.NewContext(sets["student"], form.WithMinAge(18))
//	out, err := form.Submit(fctx, values)
//	if !out.Valid {
//	    for _, field := range fctx.Rules.Fields() {
//	        if res := out.Results[field]; !res.Valid {
//	            // show res.Message next to the input
//	        }
//	    }
//	}
//
// # Policies
//
// Empty values fail required fields with the rule's own message and pass
// optional ones. Ages are computed with full calendar arithmetic (a birthday
// later in the year has not happened yet). Validation never short-circuits:
// each field reports independently.
package form
