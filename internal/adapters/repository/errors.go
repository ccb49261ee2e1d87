package repository

import "errors"

// Sentinel kinds for reference-store errors.
var (
	ErrOpen   = errors.New("reference store unavailable")
	ErrLookup = errors.New("reference lookup failed")
)
