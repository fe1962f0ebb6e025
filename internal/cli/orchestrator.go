package cli

import (
	"errors"
	"time"

	"github.com/hasbyte1/argon2-cli/hashing"
	"github.com/hasbyte1/argon2-cli/options"
)

// HashOutcome is what the formatter renders.
type HashOutcome struct {
	Encoded string
	Raw     []byte
	// DurationMillis is the wall-clock time of the hash call alone, in whole
	// milliseconds.
	DurationMillis float64
	// Verified is only computed in human-readable mode.
	Verified bool
}

// Orchestrator runs one hash request against a [hashing.Hasher].
type Orchestrator struct {
	hasher hashing.Hasher
	now    func() time.Time
}

// NewOrchestrator returns an Orchestrator using h.
func NewOrchestrator(h hashing.Hasher) *Orchestrator {
	return &Orchestrator{hasher: h, now: time.Now}
}

// Run hashes password as req describes. It times the primitive call and, in
// human-readable mode, verifies the result. A failed verification is reported
// in the outcome, never as an error.
//
// Primitive failures are returned as [*options.ValidationError] with the
// primitive's message unchanged.
func (o *Orchestrator) Run(req options.HashRequest, password []byte) (HashOutcome, error) {
	start := o.now()
	res, err := o.hasher.Hash(password, req.Params())
	elapsed := o.now().Sub(start)
	if err != nil {
		var optErr *hashing.OptionError
		field := ""
		if errors.As(err, &optErr) {
			field = optErr.Field
		}
		return HashOutcome{}, options.FromPrimitive(field, err)
	}

	out := HashOutcome{
		Encoded:        res.Encoded,
		Raw:            res.Raw,
		DurationMillis: float64(elapsed.Milliseconds()),
	}
	if req.Verifies() {
		ok, err := o.hasher.Verify(res.Encoded, password)
		out.Verified = ok && err == nil
	}
	return out, nil
}
