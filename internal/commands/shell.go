package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/autosave"
	"github.com/harmonic-pos/salonledger/internal/ledger"
)

const shellPrompt = "salonledger> "

func newShellCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands against one open ledger, saving in the background",
		Long: `Open the ledger once and read commands from standard input, one per
line, without the "salonledger" prefix. Changes are saved as they happen,
again on an interval and after a pause in activity, and once more on
exit, interrupt or end of input. Type "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.shared != nil {
				return errors.New("already in a shell")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var saver *autosave.Runner
			s, err := c.openSession(ctx, func(ledger.Change) { saver.Notify() })
			if err != nil {
				return err
			}
			saver = autosave.New(s.ledger, s.cfg.Autosave.Interval, s.cfg.Autosave.Idle, c.logger)
			saver.Start(ctx)
			c.logger.Debug("shell started", "interval", s.cfg.Autosave.Interval, "idle", s.cfg.Autosave.Idle)

			c.runShell(ctx, cmd, s)

			// The signal context may already be done; the final save must still run.
			closeCtx := context.WithoutCancel(ctx)
			return errors.Join(saver.Close(s.cfg.Autosave.ExitTimeout), s.close(closeCtx))
		},
	}
}

func (c *cli) runShell(ctx context.Context, cmd *cobra.Command, s *session) {
	out := cmd.OutOrStdout()
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, shellPrompt)
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return
			}
			line = l
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return
		}

		child := newRoot(&cli{now: c.now, operator: c.operator, shared: s})
		child.SetArgs(args)
		child.SetIn(cmd.InOrStdin())
		child.SetOut(out)
		child.SetErr(cmd.ErrOrStderr())
		// cobra prints the error itself.
		_ = child.ExecuteContext(ctx)

		if err := s.checkpoint(ctx); err != nil {
			c.logger.Error("checkpoint failed", "error", err)
		}
	}
}

// splitArgs splits a shell line into words. Single and double quotes group
// words, and a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inWord := false
	var quote rune
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
