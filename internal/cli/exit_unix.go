//go:build unix

package cli

import "golang.org/x/sys/unix"

// ExitInvalidArgument is the platform's EINVAL.
const ExitInvalidArgument = int(unix.EINVAL)
