package grammar

import (
	"errors"
	"fmt"
)

// ErrMalformedRule is wrapped by every ParseError.
var ErrMalformedRule = errors.New("malformed rule")

// ParseError reports a grammar line that could not be parsed.
type ParseError struct {
	Line   int // 1-based line number in the input, 0 if unknown
	Text   string
	Reason error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid rule on line %d: %q: %v", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("invalid rule: %q: %v", e.Text, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying reason.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedRule, e.Reason}
}
