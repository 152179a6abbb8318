package call

import (
	"fmt"
	"strings"
)

// maxLeitoLength bounds externally supplied bed identifiers before they
// become map keys.
const maxLeitoLength = 100

// ValidateCriticality checks that a criticality is one of the two
// recognised values. A missing value is invalid too.
func ValidateCriticality(c Criticality) error {
	switch c {
	case CriticalityEmergency, CriticalityAssistance:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)",
			ErrInvalidCriticality, string(c), CriticalityEmergency, CriticalityAssistance)
	}
}

// ValidateLeito checks that a bed identifier is present and within bounds.
// The identifier is otherwise opaque: ward conventions vary and the
// server does not impose a format.
func ValidateLeito(leito string) error {
	trimmed := strings.TrimSpace(leito)
	if trimmed == "" {
		return ErrMissingBed
	}
	if len(trimmed) > maxLeitoLength {
		return fmt.Errorf("%w: identifier exceeds %d characters", ErrMissingBed, maxLeitoLength)
	}
	return nil
}
