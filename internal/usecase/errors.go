package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrUnsupportedSport means no live provider is registered for the
	// sport; callers serve placeholder data instead.
	ErrUnsupportedSport = errors.New("sport has no live data provider")

	// ErrProviderUnavailable covers network failures, timeouts, open
	// circuits, and malformed upstream payloads.
	ErrProviderUnavailable = errors.New("data provider unavailable")

	// ErrAdapterMismatch means the upstream answered but the payload is
	// missing fields the canonical shape requires. Treated like an
	// unavailable provider: fall back, never cache.
	ErrAdapterMismatch = errors.New("provider payload does not match expected shape")
)
