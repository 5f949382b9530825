package registration

import (
	"errors"
	"strings"
)

// ErrDuplicateEmail is returned by repositories when the unique email
// constraint rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// ValidationError carries the human-readable messages for a rejected submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
