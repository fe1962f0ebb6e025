package options

import "github.com/hasbyte1/argon2-cli/hashing"

// OutputMode selects how a hash outcome is rendered.
type OutputMode int

const (
	// OutputHuman prints the labelled report and verifies the hash.
	OutputHuman OutputMode = iota
	// OutputEncoded prints only the encoded string.
	OutputEncoded
	// OutputRaw prints only the digest as lowercase hex.
	OutputRaw
)

func (m OutputMode) String() string {
	switch m {
	case OutputHuman:
		return "human"
	case OutputEncoded:
		return "encoded"
	case OutputRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Config holds the process-wide defaults every unset option falls back to,
// and the bounds the resolver enforces. Build one with [DefaultConfig] at
// startup and hand it to [NewSchema]; nothing reads it after that.
type Config struct {
	Variant     hashing.Variant
	Version     hashing.Version
	TimeCost    uint32
	MemoryCost  uint32
	Parallelism uint32
	HashLength  uint32
	SaltLength  uint32
	Output      OutputMode
	Limits      hashing.Limits
}

// DefaultConfig returns the documented defaults of the hashing primitive:
// Argon2i, the most recent version, t=3, m=4096 KiB, p=1, 32-byte digest,
// human-readable output.
func DefaultConfig() Config {
	p := hashing.DefaultParams()
	return Config{
		Variant:     p.Variant,
		Version:     p.Version,
		TimeCost:    p.TimeCost,
		MemoryCost:  p.MemoryCost,
		Parallelism: p.Parallelism,
		HashLength:  p.HashLength,
		SaltLength:  p.SaltLength,
		Output:      OutputHuman,
		Limits:      hashing.DefaultLimits(),
	}
}
