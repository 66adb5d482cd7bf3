package output

import (
	"os"

	"golang.org/x/term"
)

// IsOutputPiped reports whether stdout is redirected to a file or pipe
// rather than an interactive terminal.
func IsOutputPiped() bool {
	return !term.IsTerminal(int(os.Stdout.Fd()))
}
