package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision says whether output is styled for a terminal and, for
// browse, whether the interactive UI may take over the screen.
type uiModeDecision struct {
	interactive bool
	warning     string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode applies ui.mode to the writer the command renders to.
// Verbose logging shares the terminal, so it forces plain output.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		if verbose {
			return uiModeDecision{}, nil
		}
		return uiModeDecision{interactive: isTerminal(stdout)}, nil
	case "live":
		if verbose {
			return uiModeDecision{warning: "Live UI requested with --verbose; using plain output so logs stay readable."}, nil
		}
		if isTerminal(stdout) {
			return uiModeDecision{interactive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case "plain":
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a writer for TTY support.
func defaultIsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
