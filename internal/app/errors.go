package app

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed input. Problems holds every issue found,
// not just the first.
type ValidationError struct {
	Subject  string
	Problems []error
}

func NewValidationError(subject string, problems []error) *ValidationError {
	return &ValidationError{Subject: subject, Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid %s: %v", e.Subject, e.Problems[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s (%d errors):", e.Subject, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}
