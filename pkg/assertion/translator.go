package assertion

import "strings"

// Translator turns assertion lines into sentences using a Detector.
type Translator struct {
	detector Detector
}

// NewTranslator creates a translator. A nil detector uses the default registry.
func NewTranslator(d Detector) *Translator {
	if d == nil {
		d = DefaultRegistry()
	}
	return &Translator{detector: d}
}

// Translate returns the prose form of line, or "" when line is not a recognized assertion.
func (t *Translator) Translate(line string) string {
	f, ok := t.detector.Detect(strings.TrimSpace(line))
	if !ok {
		return ""
	}
	return f.String()
}

// Translate converts line with the default registry.
func Translate(line string) string {
	return NewTranslator(nil).Translate(line)
}
