package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/i474232898/weather-cli/internal/common"
	"github.com/i474232898/weather-cli/internal/weather"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func (a *App) renderReport(w io.Writer, report weather.Report, format string) error {
	switch format {
	case formatJSON, "":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: encoding report: %v", weather.ErrParse, err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case formatText:
		renderText(w, report)
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q, expected json or text", weather.ErrConfiguration, format)
	}
}

func renderText(w io.Writer, r weather.Report) {
	place := r.Location.Name
	if r.Location.Country != "" {
		place += ", " + r.Location.Country
	}
	headline := common.Capitalize(string(r.Condition))
	if r.Description != "" {
		headline = common.Capitalize(r.Description)
	}

	fmt.Fprintf(w, "%s: %s\n", place, headline)
	fmt.Fprintf(w, "  temperature: %.1f %s", r.Temperature, r.Units.Temperature)
	if r.FeelsLike != 0 {
		fmt.Fprintf(w, " (feels like %.1f %s)", r.FeelsLike, r.Units.Temperature)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  humidity:    %.0f %s\n", r.Humidity, r.Units.Humidity)
	fmt.Fprintf(w, "  wind:        %.1f %s\n", r.WindSpeed, r.Units.WindSpeed)
	if r.Pressure != 0 {
		fmt.Fprintf(w, "  pressure:    %.1f %s\n", r.Pressure, r.Units.Pressure)
	}
	if r.Precipitation != 0 {
		fmt.Fprintf(w, "  precip:      %.1f %s\n", r.Precipitation, r.Units.Precipitation)
	}
	fmt.Fprintf(w, "  time:        %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "  source:      %s\n", r.Provider)
}
