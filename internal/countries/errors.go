package countries

import "errors"

// Sentinel error kinds for this package.
var (
	ErrBadTable = errors.New("invalid embedded country table")
)
