package barcode

import (
	"strings"
	"unicode"
)

// Format identifies a barcode symbology.
type Format string

const (
	Code128 Format = "CODE128"
	EAN13   Format = "EAN13"
	EAN8    Format = "EAN8"
	UPC     Format = "UPC"
	Code39  Format = "CODE39"
	QR      Format = "QR"
)

// Default is the fallback symbology used when no rule matches.
const Default = Code128

// FormatInfo pairs a format tag with its user-facing label, for the
// manual-override picker.
type FormatInfo struct {
	Tag       Format `json:"tag"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`
}

var allFormats = []FormatInfo{
	{Tag: Code128, Label: "Code 128", IsDefault: true},
	{Tag: EAN13, Label: "EAN-13"},
	{Tag: EAN8, Label: "EAN-8"},
	{Tag: UPC, Label: "UPC-A"},
	{Tag: Code39, Label: "Code 39"},
	{Tag: QR, Label: "QR Code"},
}

// All returns the selectable formats in display order, default first.
func All() []FormatInfo {
	out := make([]FormatInfo, len(allFormats))
	copy(out, allFormats)
	return out
}

// DisplayName returns the canonical label for a format tag. Unknown tags
// fall back to the raw tag string.
func (f Format) DisplayName() string {
	for _, info := range allFormats {
		if info.Tag == f {
			return info.Label
		}
	}
	return string(f)
}

// Valid reports whether f belongs to the closed set of format tags.
func (f Format) Valid() bool {
	for _, info := range allFormats {
		if info.Tag == f {
			return true
		}
	}
	return false
}

// Infer classifies a raw card-number string into the most likely symbology.
// It is total: every input maps to a tag and no input fails. The raw value
// itself is never modified; whitespace and hyphens are stripped only for
// classification. The rule order matters because the ranges overlap (a
// 13-digit value also fits the Code-39 alphabet).
func Infer(raw string) Format {
	v := normalize(raw)
	switch {
	case allDigits(v) && len(v) == 13:
		return EAN13
	case allDigits(v) && len(v) == 8:
		return EAN8
	case allDigits(v) && len(v) == 12:
		return UPC
	case isCode39(v) && len(v) <= 20:
		return Code39
	case len(v) > 30:
		return QR
	default:
		return Default
	}
}

func normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)
}

func allDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isCode39 reports whether v fits the restricted Code-39 alphabet,
// case-insensitively: uppercase letters, digits and the symbols
// space - . $ / + %.
func isCode39(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range strings.ToUpper(v) {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '.' || r == '$' || r == '/' || r == '+' || r == '%':
		default:
			return false
		}
	}
	return true
}
