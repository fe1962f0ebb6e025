// Package options resolves the argon2 command's flags into a single
// validated [HashRequest].
//
// A [Schema] declares every option once: its kind, default, inclusive bounds
// and mutual-exclusion [Group]. A [Resolver] consumes [RawArgs] (option name
// to supplied text, absent when unset) and applies, in order: variant
// selection, time cost, memory cost (absolute KiB, else 2^exponent, else the
// default), parallelism, hash length, version, salt and output mode.
//
// Failures are [*ValidationError] values whose messages are printed verbatim:
//
//	Invalid timeCost: foo must be an integer
//	Invalid memoryCost: 512 must be between 1024 and 4294967295
package options
