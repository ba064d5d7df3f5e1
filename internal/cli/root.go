package cli

import "github.com/spf13/cobra"

const version = "0.1.0"

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "weather-cli",
		Short: "Query current, past and forecast weather from the terminal",
		Long: `weather-cli fetches weather reports from OpenWeatherMap and WeatherAPI.com.

Run it without arguments for an interactive prompt, or use the get
command for a single query. Provider API keys are read from the
environment (or a .env file): OPEN_WEATHER_MAP and WEATHER_API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt(cmd.Context())
		},
	}
	root.AddCommand(a.newGetCommand(), a.newProvidersCommand())
	return root
}
