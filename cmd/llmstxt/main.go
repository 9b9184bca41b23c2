package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmstxt"
	"github.com/google/uuid"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is the program version, set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	undo, _ := maxprocs.Set()
	defer undo()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		undo()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// RunID identifies this invocation in log output.
	RunID string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{RunID: uuid.NewString()}
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr unless --quiet is set.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmstxt"),
		kong.Description("Generate llms.txt files from a built MkDocs site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"version": "llmstxt " + Version},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'llmstxt --help' to see available commands")
	}

	// Handle help and version flags
	if len(args) == 1 {
		switch args[0] {
		case "help", "--help", "-h", "--version":
			if args[0] == "help" {
				args = []string{"--help"}
			}
			_, _ = parser.Parse(args)
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose && !cli.Quiet,
		Logger:  newLogger(stderr, cli.Quiet, cli.Verbose).With("run", m.RunID),
	}

	if err := kongCtx.Run(deps); err != nil {
		deps.errorf("error: %s\n", errorText(err))
		return err
	}
	return nil
}

// newLogger returns a text logger on w. Debug output is enabled by verbose;
// quiet discards everything.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	if quiet {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// errorText returns the message to show for err. Application errors show
// their message; anything else shows the full error chain.
func errorText(err error) string {
	if llmstxt.ErrorCode(err) == llmstxt.EINTERNAL {
		return err.Error()
	}
	return llmstxt.ErrorMessage(err)
}
