package service

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrOutOfRange marks an input outside [0,10] or not a finite number.
	ErrOutOfRange = errors.New("values must be between 0 and 10")
)
