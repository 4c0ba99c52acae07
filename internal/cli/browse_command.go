package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"quizdesk/internal/ui/browse"
)

// runBrowse starts the interactive browser. It needs a terminal on stdout.
func runBrowse(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		s, _, code := prepare(cmd, args, stdout, stderr, nil, nil)
		if s == nil {
			return code
		}
		if !s.decision.interactive {
			fmt.Fprintf(stderr, "browse needs an interactive terminal (ui.mode=%s); use the list commands instead\n", s.cfg.UI.Mode)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := browse.Run(ctx, s.client, browse.Options{
			Input:         os.Stdin,
			Output:        stdout,
			RedirectDelay: s.cfg.RedirectDelay(),
			Logger:        s.logger,
		})
		if err != nil {
			return fail(stderr, "Browsing", err)
		}
		return ExitOK
	}
}
