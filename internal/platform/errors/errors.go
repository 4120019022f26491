package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownPriority = errors.New("unknown priority")
	ErrClosed          = errors.New("channel closed")
	ErrSaveAbandoned   = errors.New("session save abandoned")
	ErrNoActiveSession = errors.New("no active session")
)
