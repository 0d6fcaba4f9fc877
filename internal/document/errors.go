// Package document serializes profile documents and parses uploaded ones back into typed sections.
package document

import (
	"errors"
	"fmt"

	"github.com/jonathan/benefits-advisor/internal/types"
)

// MalformedSectionError reports a recognized section whose table could not be parsed.
// Row is the 1-based data row index; 0 refers to the header line.
type MalformedSectionError struct {
	Section types.SectionName
	Row     int
	Cause   error
}

func (e *MalformedSectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed section %q at row %d: %v", e.Section.Title(), e.Row, e.Cause)
	}
	return fmt.Sprintf("malformed section %q at row %d", e.Section.Title(), e.Row)
}

func (e *MalformedSectionError) Unwrap() error {
	return e.Cause
}

// DecodeError represents an upload that is not valid UTF-8 text
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

var (
	errMissingHeader   = errors.New("missing header row")
	errEmptyColumn     = errors.New("empty column name")
	errDuplicateColumn = errors.New("duplicate column name")
)

// MalformedSections unpacks the per-section errors collected by Parse
func MalformedSections(err error) []*MalformedSectionError {
	if err == nil {
		return nil
	}
	var out []*MalformedSectionError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, MalformedSections(e)...)
		}
		return out
	}
	var mse *MalformedSectionError
	if errors.As(err, &mse) {
		out = append(out, mse)
	}
	return out
}
