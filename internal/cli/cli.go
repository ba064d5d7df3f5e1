// Package cli wires the terminal surface of the weather tool: a cobra
// command tree for one-shot queries and an interactive prompt session that
// reuses the same commands.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/i474232898/weather-cli/internal/weather"
)

// App binds the command tree to a weather service and the standard streams.
// Current is the provider prompt-mode queries go to; it starts at the
// service default and moves with the configure command.
type App struct {
	Service *weather.Service
	Current weather.ProviderName

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func New(svc *weather.Service) *App {
	return &App{
		Service: svc,
		Current: svc.DefaultProvider(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Execute runs the CLI with the given arguments (without the program name).
// No arguments start the interactive prompt.
func (a *App) Execute(ctx context.Context, args []string) error {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	return root.ExecuteContext(ctx)
}

// queryError marks the failure of a dispatched weather query, as opposed to
// a usage mistake. A prompt session ends on the former and keeps going on
// the latter.
type queryError struct {
	err error
}

func (e *queryError) Error() string { return e.err.Error() }
func (e *queryError) Unwrap() error { return e.err }

// ExitCode maps an error to the process exit status: 0 on success, 2 for
// configuration problems, 3 for rejected credentials, 4 for network
// failures, 5 for unusable provider responses, 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, weather.ErrConfiguration):
		return 2
	case errors.Is(err, weather.ErrAuth):
		return 3
	case errors.Is(err, weather.ErrNetwork):
		return 4
	case errors.Is(err, weather.ErrParse):
		return 5
	default:
		return 1
	}
}
