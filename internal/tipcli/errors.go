package tipcli

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrInputRejected is returned after an input error has been shown to
	// the user.
	ErrInputRejected = errors.New("input rejected")
	ErrInvalidSweep  = errors.New("invalid sweep range")
)
