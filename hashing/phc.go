package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// phcParams holds parameters and raw values decoded from a PHC hash string.
type phcParams struct {
	variant Variant
	version Version
	memory  uint32
	time    uint32
	threads uint32
	salt    []byte
	hash    []byte
}

// encodePHC serialises an Argon2 hash in PHC String Format:
//
//	$argon2i$v=19$m=4096,t=3,p=1$<salt_base64>$<hash_base64>
//
// The base64 encoding uses the standard alphabet without padding, the
// convention of the Argon2 reference implementation.
func encodePHC(variant Variant, version Version, memory, time, threads uint32, salt, hash []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		variant.String(),
		uint32(version),
		memory,
		time,
		threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// decodePHC parses an Argon2 PHC hash string and returns its components.
//
// Two layouts are accepted:
//
//	$argon2i$v=19$m=4096,t=3,p=1$<salt>$<hash>
//	$argon2i$m=4096,t=3,p=1$<salt>$<hash>
//
// The second one, without a version segment, was written by revision 0x10
// encoders and is decoded as [Version10].
func decodePHC(encoded string) (*phcParams, error) {
	// Split on "$"; the leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if parts[0] != "" || (len(parts) != 6 && len(parts) != 5) {
		return nil, fmt.Errorf("%w: expected 4 or 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	var variant Variant
	switch parts[1] {
	case "argon2d":
		variant = Argon2d
	case "argon2i":
		variant = Argon2i
	case "argon2id":
		variant = Argon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, parts[1])
	}

	version := Version10
	rest := parts[2:]
	if len(parts) == 6 {
		v, err := parseKV(parts[2], "v")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
		version = Version(v)
		if !version.Valid() {
			return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, v)
		}
		rest = parts[3:]
	}

	kvs, err := parseParams(rest[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, rest[0])
	}
	if time < 1 || threads < 1 || memory < 8*threads {
		return nil, fmt.Errorf("%w: unusable parameters m=%d,t=%d,p=%d", ErrInvalidHash, memory, time, threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(rest[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(rest[2])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: empty digest", ErrInvalidHash)
	}

	return &phcParams{
		variant: variant,
		version: version,
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint32(threads),
		salt:    salt,
		hash:    hash,
	}, nil
}

// parseKV parses a "key=value" string whose value must fit in 32 bits.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 32)
}

// parseParams splits "m=4096,t=3,p=1" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}
