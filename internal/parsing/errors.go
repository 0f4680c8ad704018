// Package parsing extracts recipe records from search-result HTML.
package parsing

import "fmt"

// ParseError represents an error reading the HTML document itself
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SelectorError represents an invalid selector set
type SelectorError struct {
	Message string
	Field   string
}

func (e *SelectorError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("selector error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("selector error: %s", e.Message)
}
