package account

import (
	"fmt"
	"unicode"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 32
	MinPINLen      = 4
	MaxPINLen      = 6
)

// Validator checks registration input before anything touches storage.
type Validator interface {
	ValidateRegister(username, pin string) error
	ValidateUsername(username string) error
	ValidatePIN(pin string) error
}

type PINValidator struct{}

func NewPINValidator() *PINValidator {
	return &PINValidator{}
}

func (v *PINValidator) ValidateRegister(username, pin string) error {
	if err := v.ValidateUsername(username); err != nil {
		return fmt.Errorf("username validation failed: %w", err)
	}

	if err := v.ValidatePIN(pin); err != nil {
		return fmt.Errorf("pin validation failed: %w", err)
	}

	return nil
}

// ValidateUsername rejects names that would not survive as a storage-key
// component.
func (v *PINValidator) ValidateUsername(username string) error {
	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLen)
	}

	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("username can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

// ValidatePIN requires a short all-digit code.
func (v *PINValidator) ValidatePIN(pin string) error {
	if len(pin) < MinPINLen || len(pin) > MaxPINLen {
		return fmt.Errorf("pin must be %d to %d digits", MinPINLen, MaxPINLen)
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("pin can only contain digits")
		}
	}

	return nil
}
