package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-cli/internal/weather"
)

// newConfigureCommand switches the provider used by subsequent prompt
// queries. It only exists inside a prompt session; one-shot calls pick a
// provider with the --provider flag instead.
func (a *App) newConfigureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "configure PROVIDER",
		Short: "Switch the provider used by subsequent queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := weather.ParseProviderName(args[0])
			if err != nil {
				return err
			}
			if !a.Service.Has(name) {
				return fmt.Errorf("%w: provider %s has no API key, set %s", weather.ErrConfiguration, name, name.EnvVar())
			}
			if name == a.Current {
				fmt.Fprintf(cmd.OutOrStdout(), "Provider %s is already in use.\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Changing provider: %s => %s.\n", a.Current, name)
			a.Current = name
			return nil
		},
	}
}
