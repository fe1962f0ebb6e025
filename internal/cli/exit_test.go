package cli

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/hasbyte1/argon2-cli/options"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		line string
		code int
	}{
		{"usage", usagef("flag provided but not defined: -x"), "argon2: error: flag provided but not defined: -x", ExitUsage},
		{"validation", options.FromPrimitive("salt", errors.New("Invalid saltLength: 5 must be between 8 and 4294967295")),
			"Error: Invalid saltLength: 5 must be between 8 and 4294967295", ExitInvalidArgument},
		{"other", errors.New("reading password: EOF"), "Error: reading password: EOF", ExitInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, code := Translate(tt.err)
			if line != tt.line || code != tt.code {
				t.Errorf("Translate = (%q, %d), want (%q, %d)", line, code, tt.line, tt.code)
			}
		})
	}
}

func TestExitInvalidArgument(t *testing.T) {
	if ExitInvalidArgument != 22 {
		t.Errorf("ExitInvalidArgument = %d, want 22", ExitInvalidArgument)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	code := report(log.New(&buf, "", 0), usagef("unrecognized arguments: b"))
	if code != ExitUsage || buf.String() != "argon2: error: unrecognized arguments: b\n" {
		t.Errorf("report = %d, %q", code, buf.String())
	}
}
