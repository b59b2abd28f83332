package tipcheck

import "errors"

var (
	// ErrInvalidConfig indicates the run configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid check config")
	// ErrUnhealthy indicates the service did not pass the health probe.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrRulesDiffer indicates the served rule table differs from the local one.
	ErrRulesDiffer = errors.New("served rules differ")
	// ErrMismatch indicates at least one case was answered incorrectly.
	ErrMismatch = errors.New("tip mismatch")
	// ErrStatsDrift indicates the service counters did not move with the run.
	ErrStatsDrift = errors.New("service stats drift")
)
