package roster

import (
	"fmt"
	"strings"
)

// ValidateNurse checks a registration for the required fields. The
// remaining fields are optional and stored as given.
func ValidateNurse(n *Nurse) error {
	if strings.TrimSpace(n.NFC) == "" {
		return fmt.Errorf("%w: nfc is required", ErrInvalidNurse)
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: nome is required", ErrInvalidNurse)
	}
	if strings.TrimSpace(n.CPF) == "" {
		return fmt.Errorf("%w: cpf is required", ErrInvalidNurse)
	}
	if strings.TrimSpace(n.Password) == "" {
		return fmt.Errorf("%w: senha is required", ErrInvalidNurse)
	}
	return nil
}

// ValidateBadgeState checks that a badge state is one of the two
// recognised values.
func ValidateBadgeState(s BadgeState) error {
	switch s {
	case BadgeEnabled, BadgeDisabled:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be %q or %q)",
			ErrInvalidBadgeState, string(s), BadgeEnabled, BadgeDisabled)
	}
}
