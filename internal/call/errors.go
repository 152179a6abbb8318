package call

import "errors"

// Domain errors for the call package. Check with errors.Is().
var (
	// ErrInvalidCriticality is returned when an intake carries a
	// criticality other than Emergencia or Auxilio.
	ErrInvalidCriticality = errors.New("call: invalid criticality")

	// ErrMissingBed is returned when an intake or closure request does
	// not identify a bed.
	ErrMissingBed = errors.New("call: missing bed identifier")

	// ErrLookupFailed is returned when the badge directory is unavailable
	// during a badge-verified closure.
	ErrLookupFailed = errors.New("call: badge lookup failed")
)
