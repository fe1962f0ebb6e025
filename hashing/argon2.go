package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/argon2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Defaults and limits
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultTimeCost is the default number of passes over memory.
	DefaultTimeCost uint32 = 3

	// DefaultMemoryCost is the default memory cost in KiB (4 MiB, 2^12).
	DefaultMemoryCost uint32 = 4096

	// DefaultParallelism is the default number of lanes.
	DefaultParallelism uint32 = 1

	// DefaultHashLength is the default digest length in bytes.
	DefaultHashLength uint32 = 32

	// DefaultSaltLength is the length of a generated salt in bytes.
	// 16 bytes encode to 22 unpadded base64 characters.
	DefaultSaltLength uint32 = 16

	// DefaultVariant is the variant used when none is requested.
	DefaultVariant = Argon2i

	// DefaultVersion is the most recent algorithm revision.
	DefaultVersion = Version13
)

// Range is an inclusive numeric interval.
type Range struct {
	Min uint64
	Max uint64
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v uint64) bool { return v >= r.Min && v <= r.Max }

// Limits are the inclusive bounds the primitive accepts for each parameter.
type Limits struct {
	TimeCost    Range
	MemoryCost  Range
	Parallelism Range
	HashLength  Range
	SaltLength  Range
}

// DefaultLimits returns the bounds of the Argon2 parameter contract.
func DefaultLimits() Limits {
	return Limits{
		TimeCost:    Range{Min: 1, Max: math.MaxUint32},
		MemoryCost:  Range{Min: 1 << 10, Max: math.MaxUint32},
		Parallelism: Range{Min: 1, Max: 1<<24 - 1},
		HashLength:  Range{Min: 4, Max: math.MaxUint32},
		SaltLength:  Range{Min: 8, Max: math.MaxUint32},
	}
}

// Params is one complete set of Argon2 inputs besides the password.
//
// All cost parameters are encoded into the output string, so a hash produced
// with any Params can later be verified without knowing them.
type Params struct {
	Variant Variant
	Version Version

	// TimeCost is the number of passes over memory (iterations).
	TimeCost uint32

	// MemoryCost is the working-set size in KiB.
	// Minimum: 8 * Parallelism.
	MemoryCost uint32

	// Parallelism is the number of independent lanes.
	Parallelism uint32

	// HashLength is the length of the raw digest in bytes.
	HashLength uint32

	// Salt is used verbatim when non-nil.
	Salt []byte

	// SaltLength is the length of the salt generated when Salt is nil.
	SaltLength uint32
}

// DefaultParams returns Params with the documented defaults and no salt.
func DefaultParams() Params {
	return Params{
		Variant:     DefaultVariant,
		Version:     DefaultVersion,
		TimeCost:    DefaultTimeCost,
		MemoryCost:  DefaultMemoryCost,
		Parallelism: DefaultParallelism,
		HashLength:  DefaultHashLength,
		SaltLength:  DefaultSaltLength,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2
// ──────────────────────────────────────────────────────────────────────────────

// Argon2 implements [Hasher] for all three variants and both revisions.
//
// argon2i and argon2id at revision 0x13 are computed by golang.org/x/crypto/argon2.
// Everything x/crypto does not offer (argon2d, revision 0x10, more than 255
// lanes) runs on the package's own block engine, which produces identical
// output for the overlapping cases.
//
// # Thread safety
//
// Argon2 is immutable after construction and safe for concurrent use.
type Argon2 struct {
	limits Limits
}

// NewArgon2 returns an Argon2 hasher enforcing [DefaultLimits].
func NewArgon2() *Argon2 {
	return &Argon2{limits: DefaultLimits()}
}

// Limits returns the bounds this hasher enforces.
func (h *Argon2) Limits() Limits { return h.limits }

// Hash derives the digest of password and returns it with its PHC encoding.
func (h *Argon2) Hash(password []byte, p Params) (Result, error) {
	if err := h.validate(p); err != nil {
		return Result{}, err
	}

	salt := p.Salt
	if salt == nil {
		var err error
		if salt, err = randomSalt(p.SaltLength); err != nil {
			return Result{}, err
		}
	}

	key := deriveKey(p.Variant, p.Version, password, salt,
		p.TimeCost, p.MemoryCost, p.Parallelism, p.HashLength)
	return Result{
		Encoded: encodePHC(p.Variant, p.Version, p.MemoryCost, p.TimeCost, p.Parallelism, salt, key),
		Raw:     key,
		Salt:    salt,
	}, nil
}

// Verify checks password against an encoded hash. The parameters are read
// from the encoded string itself.
func (h *Argon2) Verify(encoded string, password []byte) (bool, error) {
	p, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}
	computed := deriveKey(p.variant, p.version, password, p.salt,
		p.time, p.memory, p.threads, uint32(len(p.hash)))
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// Info parses an encoded hash and returns the parameters embedded in it
// without verifying anything.
func (h *Argon2) Info(encoded string) (HashInfo, error) {
	p, err := decodePHC(encoded)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Variant:     p.variant,
		Version:     p.version,
		TimeCost:    p.time,
		MemoryCost:  p.memory,
		Parallelism: p.threads,
		Salt:        p.salt,
		Hash:        p.hash,
	}, nil
}

// HashInfo carries the parameters parsed from an encoded hash string.
type HashInfo struct {
	Variant     Variant
	Version     Version
	TimeCost    uint32
	MemoryCost  uint32
	Parallelism uint32
	Salt        []byte
	Hash        []byte
}

func (h *Argon2) validate(p Params) error {
	l := h.limits
	if !p.Variant.Valid() {
		return &OptionError{Field: "type", Value: fmt.Sprint(int(p.Variant)),
			Message: "must be one of argon2d, argon2i, argon2id"}
	}
	if !p.Version.Valid() {
		return &OptionError{Field: "version", Value: fmt.Sprintf("%x", uint32(p.Version)),
			Message: "must be one of 10, 13"}
	}
	if !l.TimeCost.Contains(uint64(p.TimeCost)) {
		return outOfRange("timeCost", uint64(p.TimeCost), l.TimeCost.Min, l.TimeCost.Max)
	}
	if !l.MemoryCost.Contains(uint64(p.MemoryCost)) {
		return outOfRange("memoryCost", uint64(p.MemoryCost), l.MemoryCost.Min, l.MemoryCost.Max)
	}
	if !l.Parallelism.Contains(uint64(p.Parallelism)) {
		return outOfRange("parallelism", uint64(p.Parallelism), l.Parallelism.Min, l.Parallelism.Max)
	}
	if uint64(p.MemoryCost) < 8*uint64(p.Parallelism) {
		return &OptionError{Field: "memoryCost", Value: fmt.Sprint(p.MemoryCost),
			Message: fmt.Sprintf("must be at least 8 times parallelism (%d)", 8*uint64(p.Parallelism))}
	}
	if !l.HashLength.Contains(uint64(p.HashLength)) {
		return outOfRange("hashLength", uint64(p.HashLength), l.HashLength.Min, l.HashLength.Max)
	}
	saltLen := uint64(p.SaltLength)
	if p.Salt != nil {
		saltLen = uint64(len(p.Salt))
	}
	if !l.SaltLength.Contains(saltLen) {
		return outOfRange("saltLength", saltLen, l.SaltLength.Min, l.SaltLength.Max)
	}
	return nil
}

// deriveKey dispatches to x/crypto when it supports the combination and to
// the block engine otherwise.
func deriveKey(variant Variant, version Version, password, salt []byte, time, memory, threads, keyLen uint32) []byte {
	if version == Version13 && threads <= math.MaxUint8 {
		switch variant {
		case Argon2i:
			return argon2.Key(password, salt, time, memory, uint8(threads), keyLen)
		case Argon2id:
			return argon2.IDKey(password, salt, time, memory, uint8(threads), keyLen)
		}
	}
	return engineKey(variant, version, password, salt, time, memory, threads, keyLen)
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: argon2: failed to generate salt: %w", err)
	}
	return b, nil
}
