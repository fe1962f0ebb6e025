package cli

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

const readHint = "Reading password from stdin until end of input (Ctrl-D)"

// ReadPassword accumulates every byte of r until end of input. Nothing is
// trimmed or split: the bytes are the password.
func ReadPassword(r io.Reader) ([]byte, error) {
	password, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
