//go:build !unix

package cli

// ExitInvalidArgument matches EINVAL on unix systems.
const ExitInvalidArgument = 22
