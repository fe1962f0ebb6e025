// Command argon2 hashes a password read from standard input with Argon2.
//
//	echo -n password | argon2 somesalt -id -t 4 -k 65536 -p 2
//
// Run with -h for the full option list. An interrupt while the password is
// being read ends the command without output.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hasbyte1/argon2-cli/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
