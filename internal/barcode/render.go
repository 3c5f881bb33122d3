package barcode

import "fmt"

// Renderer produces a visual barcode for a value in a given format. The
// core never validates that value is encodable in the format; rendering
// failures are the renderer's concern.
type Renderer interface {
	Render(value string, f Format) (data []byte, contentType string, err error)
}

// TextRenderer is the bundled fallback renderer. It emits a plain-text
// placeholder instead of a real symbol, which is the accepted degradation
// when no native renderer for the format is available.
type TextRenderer struct{}

func (TextRenderer) Render(value string, f Format) ([]byte, string, error) {
	body := fmt.Sprintf("%s\n%s\n", f.DisplayName(), value)
	return []byte(body), "text/plain; charset=utf-8", nil
}
