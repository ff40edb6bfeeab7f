package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrGameNotStarted        = errors.New("game not started")
	ErrGameEnded             = errors.New("game already ended")
)
