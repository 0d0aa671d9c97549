package sanitizer

import "regexp"

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
	dotRegex        = regexp.MustCompile(`\.+`)
)
