package detail

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrUnknownNOC means the requested code is not in the country
	// table. Reported before any network or store call.
	ErrUnknownNOC = errors.New("unknown noc code")

	// ErrReferenceLookup means one of the reference-store lookups
	// failed; no partial results are returned.
	ErrReferenceLookup = errors.New("reference lookup failed")
)
