package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-cli/internal/weather"
)

func (a *App) newGetCommand() *cobra.Command {
	var (
		providerFlag string
		unitsFlag    string
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:   "get ADDRESS [DATE]",
		Short: "Fetch weather for an address, now or on a YYYY-MM-DD day",
		Long: `Fetch a weather report for an address: a place name ("Kyiv", "London,UK")
or "lat,lon" coordinates. With a DATE the report covers that day, past or
future, as far as the provider's archive and forecast horizon reach.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.Current
			if providerFlag != "" {
				parsed, err := weather.ParseProviderName(providerFlag)
				if err != nil {
					return err
				}
				name = parsed
			}
			if !a.Service.Has(name) {
				return fmt.Errorf("%w: provider %s has no API key, set %s", weather.ErrConfiguration, name, name.EnvVar())
			}

			q := weather.Query{
				Location: weather.ParseLocation(args[0]),
				Units:    weather.UnitSystem(unitsFlag),
			}
			if len(args) == 2 {
				q.Date = args[1]
			}
			// Shape problems are usage errors; only the dispatched query
			// gets the session-ending marker.
			if err := q.Validate(); err != nil {
				return err
			}

			report, err := a.Service.Query(cmd.Context(), name, q)
			if err != nil {
				return &queryError{err: err}
			}
			return a.renderReport(cmd.OutOrStdout(), report, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "provider to query (open-weather-map or weather-api)")
	cmd.Flags().StringVarP(&unitsFlag, "units", "u", "metric", "unit system (metric or imperial)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "output format (json or text)")
	return cmd
}
