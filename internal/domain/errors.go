package domain

import "errors"

var (
	// ErrStoreUnavailable wraps transport or service failures from the
	// key-value store. Never retried by this codebase.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMalformedKey reports a stored key that does not match the
	// expected encoding.
	ErrMalformedKey = errors.New("malformed key")

	// ErrInvalidMood reports a mood value outside [1,5].
	ErrInvalidMood = errors.New("mood value out of range")

	// ErrExternalService wraps failures from the LLM or chat transport.
	ErrExternalService = errors.New("external service failure")
)
