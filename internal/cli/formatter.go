package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/hasbyte1/argon2-cli/options"
)

// Render writes out in the mode req selects. The whole rendering is built
// before the single write, so w never receives a partial report.
//
// Human-readable labels and spacing are stable; scripts match on them.
func Render(w io.Writer, req options.HashRequest, out HashOutcome) error {
	var buf bytes.Buffer
	switch req.Output {
	case options.OutputRaw:
		fmt.Fprintln(&buf, hex.EncodeToString(out.Raw))
	case options.OutputEncoded:
		fmt.Fprintln(&buf, out.Encoded)
	default:
		fmt.Fprintf(&buf, "Type: \t\t%s\n", req.Variant.Name())
		fmt.Fprintf(&buf, "Iterations: \t%d\n", req.TimeCost)
		fmt.Fprintf(&buf, "Memory: \t%d KiB\n", req.MemoryCost)
		fmt.Fprintf(&buf, "Parallelism: \t%d\n", req.Parallelism)
		fmt.Fprintf(&buf, "Encoded: \t%s\n", out.Encoded)
		fmt.Fprintf(&buf, "%.3f seconds\n", out.DurationMillis/1000)
		fmt.Fprintf(&buf, "Verification %s\n", verification(out.Verified))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func verification(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
