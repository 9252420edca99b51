package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrCorruptData        = errors.New("corrupt data")
	ErrNotFound           = errors.New("record not found")

	// ErrSummarizerNotConfigured is returned by summarizers without credentials.
	ErrSummarizerNotConfigured = errors.New("summarizer not configured")
)

// CorruptDataError is returned when a persisted collection cannot be decoded.
// The whole collection is unusable; nothing is recovered from it.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data under key %q: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// Is lets callers match any CorruptDataError with errors.Is(err, ErrCorruptData).
func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}
