package roster

import "errors"

// Domain errors for the roster package. Check with errors.Is().
var (
	// ErrNurseNotFound is returned when no nurse matches the given badge.
	ErrNurseNotFound = errors.New("roster: nurse not found")

	// ErrNurseExists is returned when registering a badge that is already
	// on the roster.
	ErrNurseExists = errors.New("roster: nurse already exists")

	// ErrInvalidNurse is returned when a registration is missing required
	// fields.
	ErrInvalidNurse = errors.New("roster: invalid nurse")

	// ErrInvalidBadgeState is returned when a badge state is neither
	// habilitado nor desabilitado.
	ErrInvalidBadgeState = errors.New("roster: invalid badge state")
)
