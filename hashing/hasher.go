package hashing

import "strings"

// Variant identifies one of the three Argon2 parameter-mixing strategies.
// The numeric values are the type codes the algorithm mixes into its
// initial hash, so they must not be reordered.
type Variant int

const (
	// Argon2d uses data-dependent memory access.
	Argon2d Variant = iota
	// Argon2i uses data-independent memory access (the default).
	Argon2i
	// Argon2id runs data-independent passes first, then data-dependent ones.
	Argon2id
)

// String returns the identifier used in encoded hashes, e.g. "argon2i".
func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return "unknown"
	}
}

// Name returns the human-readable name, e.g. "Argon2i".
func (v Variant) Name() string {
	switch v {
	case Argon2d:
		return "Argon2d"
	case Argon2i:
		return "Argon2i"
	case Argon2id:
		return "Argon2id"
	default:
		return "Unknown"
	}
}

// Valid reports whether v is one of the three known variants.
func (v Variant) Valid() bool { return v >= Argon2d && v <= Argon2id }

// Version is the Argon2 algorithm revision.
type Version uint32

const (
	// Version10 is the original revision (0x10).
	Version10 Version = 0x10
	// Version13 is the current revision (0x13) and the default.
	Version13 Version = 0x13
)

// Valid reports whether v is a supported revision.
func (v Version) Valid() bool { return v == Version10 || v == Version13 }

// Hasher is the contract the command-line front end needs from a password
// hashing primitive.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Hash derives a digest of password using p and returns both the
	// self-describing encoded string and the raw digest bytes.
	// When p.Salt is nil a random salt of p.SaltLength bytes is generated.
	Hash(password []byte, p Params) (Result, error)

	// Verify reports whether password matches the encoded hash.
	// Returns (false, err) if the encoded string is structurally invalid.
	//
	// Comparison is performed in constant time.
	Verify(encoded string, password []byte) (bool, error)
}

// Result is the output of a successful [Hasher.Hash] call.
type Result struct {
	// Encoded is the PHC string, e.g. $argon2i$v=19$m=4096,t=3,p=1$<salt>$<hash>.
	Encoded string
	// Raw is the digest alone, without salt or parameters.
	Raw []byte
	// Salt is the salt that was actually used (generated or supplied).
	Salt []byte
}

// DetectVariant inspects an encoded hash and returns the [Variant] that
// produced it. It only looks at the prefix and does not verify the hash.
//
// The second return value is false when the prefix is not recognised.
func DetectVariant(encoded string) (Variant, bool) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return Argon2id, true
	case strings.HasPrefix(encoded, "$argon2i$"):
		return Argon2i, true
	case strings.HasPrefix(encoded, "$argon2d$"):
		return Argon2d, true
	default:
		return 0, false
	}
}
