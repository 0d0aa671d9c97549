package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.Vietnamese)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

// NFC returns the canonical composed form of s.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// TitleName capitalises every word using Vietnamese casing rules,
// e.g. "lê văn an" becomes "Lê Văn An".
func TitleName(s string) string {
	return titleCaser.String(NormalizeWhitespace(s))
}

// NormalizeWhitespace collapses runs of whitespace into one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars removes control characters from a string,
// keeping only printable characters and common whitespace.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// NormalizeEmail lowercases and trims, and collapses repeated dots in the local part.
// Input without exactly one @ is returned lowercased and trimmed.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// Text is the default pipeline for free text inputs.
var Text = Compose(NFC, RemoveControlChars, Trim)
