// Package hashing is the Argon2 password-hashing primitive behind the argon2
// command.
//
// # Architecture
//
// The [Hasher] interface is the whole contract the command needs: Hash turns
// a password and a [Params] set into a [Result], Verify checks a password
// against an encoded string. [Argon2] is the only implementation and supports
// all three variants ([Argon2d], [Argon2i], [Argon2id]) at both revisions
// ([Version10], [Version13]).
//
// # Quick start
//
//	h := hashing.NewArgon2()
//	p := hashing.DefaultParams()
//	p.Salt = []byte("somesalt")
//
//	res, err := h.Hash([]byte("password"), p)
//	if err != nil { log.Fatal(err) }
//	ok, _ := h.Verify(res.Encoded, []byte("password")) // true
//
// # Defaults and limits
//
//   - t=3 iterations, m=4096 KiB, p=1 lane, 32-byte digest, 16-byte salt.
//   - Bounds are reported by [DefaultLimits]; values outside them fail with an
//     [*OptionError] that unwraps to [ErrInvalidOption].
//
// # Argon2 hash format
//
// Hashes are encoded in the PHC string format:
//
//	$argon2i$v=19$m=4096,t=3,p=1$<base64-salt>$<base64-hash>
//
// All parameters are self-contained in the string, so no external configuration
// is needed to verify a previously produced hash.
package hashing
