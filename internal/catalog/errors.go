package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates the catalog path does not exist or cannot be read.
	ErrSourceNotFound = errors.New("catalog source not found")

	// ErrMalformedRecord matches any *MalformedRecordError via errors.Is.
	ErrMalformedRecord = errors.New("malformed catalog record")
)

// MalformedRecordError reports a catalog row that failed to parse.
// Line is 1-based and counts the header row.
type MalformedRecordError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: line %d: %v", ErrMalformedRecord, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d: %s %q: %v", ErrMalformedRecord, e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Is lets callers test for the malformed-record class without a type assertion.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
