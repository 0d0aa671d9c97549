// Package sanitizer normalises raw form input before it is validated or
// displayed.
//
// Helpers are small string transforms that can be chained with Apply or stored
// as reusable pipelines with Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.NFC,
//	    sanitizer.RemoveControlChars,
//	    sanitizer.NormalizeWhitespace,
//	)
//	name := clean(rawName)
//
// NFC matters for Vietnamese input: browsers and keyboards may submit the same
// accented letter either precomposed or as a base letter plus combining marks,
// and regular expressions only treat them alike after normalisation.
//
// Named transforms (Lookup) let rule files refer to sanitizers by name.
package sanitizer
