package sanitizer

import (
	"slices"
	"strings"
)

var named = map[string]func(string) string{
	"trim":       Trim,
	"lower":      ToLower,
	"nfc":        NFC,
	"title":      TitleName,
	"whitespace": NormalizeWhitespace,
	"digits":     KeepDigits,
	"email":      NormalizeEmail,
	"text":       Text,
}

// Lookup returns the transform registered under name (case-insensitive).
func Lookup(name string) (func(string) string, bool) {
	fn, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// Names lists the registered transform names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
