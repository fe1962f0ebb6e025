package hashing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := h.Verify(encoded, password)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // encoded string is malformed
//	}
var (
	// ErrInvalidHash is returned when an encoded string cannot be parsed because
	// it has an unrecognised format, missing fields, or invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a parameter value falls outside the
	// range the algorithm accepts (e.g., a salt shorter than 8 bytes).
	// Every [*OptionError] unwraps to it.
	ErrInvalidOption = errors.New("hashing: invalid option value")
)

// OptionError describes a parameter the primitive refused.
//
// Its message already has the user-facing shape
//
//	Invalid <field>: <value> must be between <min> and <max>
//
// so callers can print it verbatim.
type OptionError struct {
	Field   string
	Value   string
	Message string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("Invalid %s: %s %s", e.Field, e.Value, e.Message)
}

// Unwrap returns [ErrInvalidOption].
func (e *OptionError) Unwrap() error { return ErrInvalidOption }

func outOfRange(field string, value, min, max uint64) *OptionError {
	return &OptionError{
		Field:   field,
		Value:   fmt.Sprint(value),
		Message: fmt.Sprintf("must be between %d and %d", min, max),
	}
}
