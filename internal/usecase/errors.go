package usecase

import "errors"

var (
	// ErrInvalidInput marks caller mistakes such as an unknown participant
	// code or a malformed posted document.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDependencyUnavailable marks a results source that could not be read.
	ErrDependencyUnavailable = errors.New("results source unavailable")
)
