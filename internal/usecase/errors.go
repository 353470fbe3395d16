package usecase

import "errors"

// Sentinels returned by RosterService. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrInvalidInput          = errors.New("invalid roster input")
	ErrNotFound              = errors.New("roster entry not found")
	ErrConflict              = errors.New("roster entry already exists")
	ErrDependencyUnavailable = errors.New("roster archive unavailable")
)
