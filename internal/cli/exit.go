package cli

import (
	"errors"
	"fmt"
	"log"
)

const (
	// ExitSuccess is returned when the result was written, including -h.
	ExitSuccess = 0
	// ExitUsage is returned for a malformed command line.
	ExitUsage = 2
)

// UsageError is a tokenizing failure: an unknown flag, a flag missing its
// value, or an extra positional argument.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Translate maps a failure to the line printed on the error channel and the
// process exit status. Validation and primitive errors keep their message
// unchanged behind the "Error: " prefix.
func Translate(err error) (string, int) {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return "argon2: error: " + usageErr.Message, ExitUsage
	}
	return "Error: " + err.Error(), ExitInvalidArgument
}

// report logs err on logger and returns the exit status.
func report(logger *log.Logger, err error) int {
	line, code := Translate(err)
	logger.Print(line)
	return code
}
