package barcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Format
	}{
		{"thirteen digits", "1234567890128", EAN13},
		{"thirteen digits with hyphens", "123-4567-890128", EAN13},
		{"thirteen digits with spaces", "123 4567 890128", EAN13},
		{"eight digits", "12345678", EAN8},
		{"twelve digits", "123456789012", UPC},
		{"code39 alphabet", "ABC-123", Code39},
		{"code39 lowercase", "abc123", Code39},
		{"code39 symbols", "A$B/C+1%", Code39},
		{"fourteen digits fit code39", "12345678901234", Code39},
		{"long payload", strings.Repeat("x", 31), QR},
		{"url payload", "https://example.com/very/long/membership/link", QR},
		{"empty string", "", Code128},
		{"mixed charset", "käse#99", Code128},
		{"code39 alphabet but too long", strings.Repeat("A", 21), Code128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.in))
		})
	}
}

func TestInferIsDeterministic(t *testing.T) {
	for _, in := range []string{"", "1234567890128", "ABC-123", strings.Repeat("z", 40)} {
		assert.Equal(t, Infer(in), Infer(in))
	}
}

func TestDigitLengthRulesAreExclusive(t *testing.T) {
	byLength := map[int]Format{13: EAN13, 12: UPC, 8: EAN8}
	for length, want := range byLength {
		got := Infer(strings.Repeat("7", length))
		assert.Equal(t, want, got, "length %d", length)
	}
}

func TestAll(t *testing.T) {
	formats := All()
	assert.Len(t, formats, 6)
	assert.Equal(t, Code128, formats[0].Tag)
	assert.True(t, formats[0].IsDefault)
	for _, info := range formats[1:] {
		assert.False(t, info.IsDefault)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "EAN-13", EAN13.DisplayName())
	assert.Equal(t, "Code 128", Code128.DisplayName())
	assert.Equal(t, "BOGUS", Format("BOGUS").DisplayName())
}

func TestValid(t *testing.T) {
	assert.True(t, QR.Valid())
	assert.False(t, Format("").Valid())
	assert.False(t, Format("PDF417").Valid())
}

func TestTextRenderer(t *testing.T) {
	data, contentType, err := TextRenderer{}.Render("12345678", EAN8)
	assert.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.Contains(t, string(data), "12345678")
	assert.Contains(t, string(data), "EAN-8")
}
