package options

import "github.com/hasbyte1/argon2-cli/hashing"

// MemorySource records which input determined the memory cost.
type MemorySource int

const (
	// MemoryFromDefault means neither -m nor -k was given.
	MemoryFromDefault MemorySource = iota
	// MemoryFromExponent means -m N set the cost to 2^N KiB.
	MemoryFromExponent
	// MemoryFromAbsolute means -k N set the cost to N KiB.
	MemoryFromAbsolute
)

// RawArgs maps option names to the text the user supplied. An option that
// was not given is absent from the map; switches that were given map to "true".
type RawArgs map[string]string

// HashRequest is the fully resolved and validated set of hashing parameters
// for one invocation. It is created once by [Resolver.Resolve] and is
// read-only afterwards.
type HashRequest struct {
	Variant      hashing.Variant
	Version      hashing.Version
	TimeCost     uint32
	MemoryCost   uint32 // KiB
	MemorySource MemorySource
	Parallelism  uint32
	HashLength   uint32
	// Salt is nil when the primitive should generate one of SaltLength bytes.
	Salt       []byte
	SaltLength uint32
	Output     OutputMode
}

// Params converts the request into the primitive's parameter set.
// The salt is copied so the request stays unchanged.
func (r HashRequest) Params() hashing.Params {
	var salt []byte
	if r.Salt != nil {
		salt = append([]byte{}, r.Salt...)
	}
	return hashing.Params{
		Variant:     r.Variant,
		Version:     r.Version,
		TimeCost:    r.TimeCost,
		MemoryCost:  r.MemoryCost,
		Parallelism: r.Parallelism,
		HashLength:  r.HashLength,
		Salt:        salt,
		SaltLength:  r.SaltLength,
	}
}

// Verifies reports whether the request's output mode also verifies the hash
// and reports timing.
func (r HashRequest) Verifies() bool { return r.Output == OutputHuman }
