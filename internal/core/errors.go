package core

import "errors"

// Error codes for domain errors surfaced to clients.
const (
	ErrCodeInvalidPoll = "invalid_poll"
	ErrCodeBadRequest  = "bad_request"
)

var (
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrTooFewOptions   = errors.New("need at least two non-empty options")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrSessionClosed   = errors.New("session closed")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
