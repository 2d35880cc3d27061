package domain

import "errors"

var (
	// ErrUnauthorized marks a credential the backend no longer accepts.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRemote marks any other failed call to the backend.
	ErrRemote = errors.New("remote api error")

	ErrInvalidSession      = errors.New("invalid session")
	ErrValidation          = errors.New("validation failed")
	ErrRejectedContent     = errors.New("content contains inappropriate language")
	ErrDuplicateSubmission = errors.New("submission already in progress")
	ErrStoreUnavailable    = errors.New("session store unavailable")
)
