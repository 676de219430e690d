package captions

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument reports a caption document that cannot be converted
// without guessing missing or invalid values.
var ErrMalformedDocument = errors.New("malformed caption document")

// MalformedDocumentError identifies the paragraph and field that failed to parse.
type MalformedDocumentError struct {
	// Paragraph is the 1-based position of the offending record.
	Paragraph int
	Field     string
	Err       error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: paragraph %d: %s: %v", ErrMalformedDocument, e.Paragraph, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: paragraph %d: missing %s", ErrMalformedDocument, e.Paragraph, e.Field)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedDocument for every MalformedDocumentError.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}
