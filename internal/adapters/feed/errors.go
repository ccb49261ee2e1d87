package feed

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	// ErrUpstream covers transport failures and non-2xx responses.
	ErrUpstream = errors.New("upstream feed unavailable")

	// ErrEmptyPayload means the response arrived but the expected
	// nested field was absent.
	ErrEmptyPayload = errors.New("upstream payload missing expected field")
)
