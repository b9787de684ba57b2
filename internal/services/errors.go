package services

import "errors"

var (
	// ErrNotFound means no link exists for the requested short code.
	ErrNotFound = errors.New("link not found")
	// ErrCodeTaken means a caller-supplied short code is already in use.
	ErrCodeTaken = errors.New("short code already taken")
)

// ValidationError marks a create request the caller must fix; handlers map
// it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
