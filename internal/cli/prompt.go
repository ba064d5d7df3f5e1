package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// runPrompt drives the interactive session: one command per line, split on
// whitespace, parsed by the same cobra commands the one-shot mode uses.
// Usage mistakes are printed and the session continues; a failed weather
// query ends the session with that error.
func (a *App) runPrompt(ctx context.Context) error {
	fmt.Fprintf(a.Stdout, "Provider %s will be used.\n", a.Current)
	fmt.Fprintln(a.Stdout, "Commands: get ADDRESS [DATE], configure PROVIDER, providers, exit.")

	scanner := bufio.NewScanner(a.Stdin)
	for {
		fmt.Fprint(a.Stdout, "> ")
		if !scanner.Scan() {
			// EOF ends the session cleanly.
			fmt.Fprintln(a.Stdout)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		session := a.newSessionCommand()
		session.SetArgs(fields)
		err := session.ExecuteContext(ctx)
		if err == nil {
			continue
		}

		var qErr *queryError
		if errors.As(err, &qErr) {
			return err
		}
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	}
}

// newSessionCommand builds a fresh command tree for a single prompt line, so
// flag state never leaks between lines.
func (a *App) newSessionCommand() *cobra.Command {
	session := &cobra.Command{
		Use:           "weather-cli",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	session.SetOut(a.Stdout)
	session.SetErr(a.Stderr)
	session.AddCommand(a.newGetCommand(), a.newConfigureCommand(), a.newProvidersCommand())
	return session
}
