package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

func TestNFC(t *testing.T) {
	t.Parallel()

	decomposed := "Le\u0302" // e + combining circumflex
	assert.Equal(t, "Lê", sanitizer.NFC(decomposed))
	assert.Equal(t, "Lê", sanitizer.NFC("Lê"))
}

func TestTitleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase ascii", "le van an", "Le Van An"},
		{"vietnamese diacritics", "lê  văn   đức", "Lê Văn Đức"},
		{"upper case input", "NGUYỄN THỊ HOA", "Nguyễn Thị Hoa"},
		{"surrounding spaces", "  an  ", "An"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.TitleName(tt.input))
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12 Lê Lợi, Quận 1", sanitizer.NormalizeWhitespace(" 12  Lê Lợi,\n\tQuận 1 "))
	assert.Equal(t, "", sanitizer.NormalizeWhitespace(" \t "))
}

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab\ncd", sanitizer.RemoveControlChars("a\x00b\ncd\x07"))
}

func TestKeepDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0901234567", sanitizer.KeepDigits("090 123-4567"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "an.le@example.com", sanitizer.NormalizeEmail("  An..Le@Example.COM "))
	assert.Equal(t, "not-an-email", sanitizer.NormalizeEmail("Not-An-Email"))
	assert.Equal(t, "a@b@c", sanitizer.NormalizeEmail("a@b@c"))
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Lê Văn", sanitizer.Text("  Lê Văn\x00 "))
}
