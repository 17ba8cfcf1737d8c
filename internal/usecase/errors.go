package usecase

import "errors"

var (
	// ErrInvalidInput signals a request that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized signals a caller without a valid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable signals an upstream outage.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
