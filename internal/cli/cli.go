package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hasbyte1/argon2-cli/hashing"
	"github.com/hasbyte1/argon2-cli/options"
)

const synopsis = "argon2 [-h] salt [-i|-d|-id] [-t iterations] " +
	"[-m log2(memory in KiB) | -k memory in KiB] [-p parallelism] " +
	"[-l hash length] [-e|-r] [-v (10|13)]"

// App wires the resolver, the hasher and the formatter for one process.
type App struct {
	Config options.Config
	Hasher hashing.Hasher
}

// New returns an App with the default configuration and the Argon2 hasher.
func New() *App {
	return &App{Config: options.DefaultConfig(), Hasher: hashing.NewArgon2()}
}

// Run is New().Run.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return New().Run(ctx, args, stdin, stdout, stderr)
}

type readResult struct {
	password []byte
	err      error
}

// Run executes one invocation and returns the process exit status.
//
// The password is read from stdin while the options are resolved; hashing
// starts only once both are done. Any failure is logged to stderr as a single
// line and leaves stdout empty. Cancelling ctx abandons a pending read.
func (a *App) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)
	resolver := options.NewResolver(a.Config)

	raw, err := tokenize(resolver.Schema(), args)
	if errors.Is(err, flag.ErrHelp) {
		writeUsage(stdout, resolver.Schema())
		return ExitSuccess
	}
	if err != nil {
		writeUsage(stderr, resolver.Schema())
		return report(logger, err)
	}

	read := make(chan readResult, 1)
	go func() {
		password, err := ReadPassword(stdin)
		read <- readResult{password: password, err: err}
	}()

	req, err := resolver.Resolve(raw)
	if err != nil {
		return report(logger, err)
	}
	if isTerminal(stdin) {
		logger.Print(readHint)
	}

	var in readResult
	select {
	case in = <-read:
	case <-ctx.Done():
		return report(logger, ctx.Err())
	}
	if in.err != nil {
		return report(logger, in.err)
	}

	out, err := NewOrchestrator(a.Hasher).Run(req, in.password)
	if err != nil {
		return report(logger, err)
	}
	if err := Render(stdout, req, out); err != nil {
		return report(logger, err)
	}
	return ExitSuccess
}

// tokenize splits args into named options with the standard flag package.
// Flags and the positional salt may be interleaved; only options the user
// actually gave end up in the result.
func tokenize(schema *options.Schema, args []string) (options.RawArgs, error) {
	fs := flag.NewFlagSet("argon2", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	switches := make(map[string]*bool)
	for _, spec := range schema.Options() {
		switch spec.Kind {
		case options.FlagKind, options.ChoiceKind:
			switches[spec.Name] = fs.Bool(spec.Name, false, spec.Usage)
		case options.IntegerKind, options.EnumKind:
			fs.String(spec.Name, spec.Default, spec.Usage)
		}
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, usagef("%v", err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			positional = append(positional, rest...)
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	if len(positional) > 1 {
		return nil, usagef("unrecognized arguments: %s", strings.Join(positional[1:], " "))
	}

	raw := make(options.RawArgs)
	fs.Visit(func(f *flag.Flag) {
		if b, ok := switches[f.Name]; ok {
			if *b {
				raw[f.Name] = "true"
			}
			return
		}
		raw[f.Name] = f.Value.String()
	})
	if len(positional) == 1 {
		raw[options.OptSalt] = positional[0]
	}
	return raw, nil
}

func writeUsage(w io.Writer, schema *options.Schema) {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s\n  Password is read from stdin\n\n", synopsis)
	b.WriteString("Positional arguments:\n")
	for _, spec := range schema.Options() {
		if spec.Kind == options.PositionalKind {
			fmt.Fprintf(&b, "  %-16s%s\n", spec.Metavar, spec.Usage)
		}
	}
	b.WriteString("\nOptional arguments:\n")
	fmt.Fprintf(&b, "  %-16s%s\n", "-h", "Show this help message and exit")
	for _, spec := range schema.Options() {
		if spec.Kind == options.PositionalKind {
			continue
		}
		name := "-" + spec.Name
		if spec.Metavar != "" {
			name += " " + spec.Metavar
		}
		fmt.Fprintf(&b, "  %-16s%s\n", name, spec.Usage)
	}
	io.WriteString(w, b.String())
}
