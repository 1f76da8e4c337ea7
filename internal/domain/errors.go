package domain

import "errors"

// Domain errors
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrNoValidHistory    = errors.New("no valid event type history for date")
	ErrInvalidScope      = errors.New("invalid statistics scope")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInternalError     = errors.New("internal server error")
)

// IsNotFoundError checks if an error is a not-found type error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrEventTypeNotFound)
}
