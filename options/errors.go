package options

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel every [*ValidationError] unwraps to.
//
//	req, err := r.Resolve(raw)
//	if errors.Is(err, options.ErrValidation) {
//	    // report and exit with the invalid-argument status
//	}
var ErrValidation = errors.New("options: invalid argument")

// ErrorKind classifies a [ValidationError].
type ErrorKind int

const (
	// NotInteger means the value did not parse as an integer.
	NotInteger ErrorKind = iota + 1
	// OutOfRange means the value parsed but falls outside the declared bounds.
	OutOfRange
	// Conflict means two options of one mutual-exclusion group were both set.
	Conflict
	// InvalidChoice means an enumerated option got a value outside its choices.
	InvalidChoice
	// UnknownOption means the raw arguments named an option the schema lacks.
	UnknownOption
	// PrimitiveFailure means the hashing primitive itself refused the request.
	PrimitiveFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NotInteger:
		return "not-an-integer"
	case OutOfRange:
		return "out-of-range"
	case Conflict:
		return "mutually-exclusive-conflict"
	case InvalidChoice:
		return "invalid-choice"
	case UnknownOption:
		return "unknown-option"
	case PrimitiveFailure:
		return "primitive-failure"
	default:
		return "unknown"
	}
}

// ValidationError is a fatal, user-facing argument error.
//
// Message is a contract surface that scripts parse; it is printed verbatim
// after "Error: " and must keep the shapes
//
//	Invalid <field>: <value> must be an integer
//	Invalid <field>: <value> must be between <min> and <max>
type ValidationError struct {
	Field   string
	Kind    ErrorKind
	Value   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap returns [ErrValidation].
func (e *ValidationError) Unwrap() error { return ErrValidation }

func notInteger(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    NotInteger,
		Value:   value,
		Message: fmt.Sprintf("Invalid %s: %s must be an integer", field, value),
	}
}

func outOfRange(field, value string, min, max uint64) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    OutOfRange,
		Value:   value,
		Message: fmt.Sprintf("Invalid %s: %s must be between %d and %d", field, value, min, max),
	}
}

func conflict(field string, names []string) *ValidationError {
	dashed := make([]string, len(names))
	for i, n := range names {
		dashed[i] = "-" + n
	}
	last := len(dashed) - 1
	flags := strings.Join(dashed[:last], ", ") + " and " + dashed[last]
	return &ValidationError{
		Field:   field,
		Kind:    Conflict,
		Message: fmt.Sprintf("Invalid %s: %s are mutually exclusive", field, flags),
	}
}

func invalidChoice(field, value string, choices []string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    InvalidChoice,
		Value:   value,
		Message: fmt.Sprintf("Invalid %s: %s must be one of %s", field, value, strings.Join(choices, ", ")),
	}
}

// FromPrimitive wraps an error returned by the hashing primitive. The
// primitive's message is kept unchanged.
func FromPrimitive(field string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    PrimitiveFailure,
		Message: err.Error(),
	}
}
