// Package output writes scraped recipes to CSV files.
package output

import "fmt"

// WriteError represents a filesystem failure while producing an output file
type WriteError struct {
	Path  string
	Op    string
	Cause error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("write error: %s %s", e.Op, e.Path)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// FileNameError is returned when an ingredient cannot be turned into a file name
type FileNameError struct {
	Ingredient string
}

func (e *FileNameError) Error() string {
	return fmt.Sprintf("ingredient %q does not produce a usable file name", e.Ingredient)
}
