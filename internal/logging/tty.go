package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// SupportsColor reports whether the writer can take ANSI color codes: it
// must be a terminal, NO_COLOR must be unset (https://no-color.org), and
// TERM must not be "dumb".
func SupportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
