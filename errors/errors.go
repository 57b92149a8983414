package errors

import "fmt"

// ParseError describes one line the parser could not use as written.
type ParseError struct {
	Message string
	Line    int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseErrors is a slice of ParseError that implements the error interface.
// This allows returning every problem found in a source at once.
type ParseErrors []ParseError

func (p ParseErrors) Error() string {
	if len(p) == 0 {
		return ""
	}
	// For simplicity, the default error message for the collection
	// just reports the first error.
	msg := fmt.Sprintf("hconf: parsing error at line %d: %s", p[0].Line, p[0].Message)
	if len(p) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(p)-1)
	}
	return msg
}
