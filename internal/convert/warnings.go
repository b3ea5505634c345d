package convert

import "fmt"

// Warning is a non-fatal diagnostic collected during conversion.
//
// Conversion never fails on malformed dialect constructs; the construct is
// left byte-identical and a Warning records it so callers (and tests) can
// observe the leniency without output bytes changing.
type Warning struct {
	Line    int // 1-based line in the document body, 0 when unknown
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

func warnf(line int, format string, args ...any) Warning {
	return Warning{Line: line, Message: fmt.Sprintf(format, args...)}
}
