// Package cli is the argon2 command: it tokenizes the command line, reads the
// password from standard input, resolves the options, runs the hash and
// renders the result.
//
// Exit statuses are [ExitSuccess], [ExitUsage] for malformed command lines and
// [ExitInvalidArgument] (EINVAL, 22) for every validation or hashing failure.
package cli
