package weather

import (
	"context"
	"fmt"
	"strings"
)

// ProviderName identifies a supported weather data source.
type ProviderName string

const (
	ProviderOpenWeatherMap ProviderName = "open-weather-map"
	ProviderWeatherAPI     ProviderName = "weather-api"
)

// DefaultProviderName is used when the caller does not pick a provider.
const DefaultProviderName = ProviderOpenWeatherMap

// ProviderNames lists every supported provider in a stable order.
func ProviderNames() []ProviderName {
	return []ProviderName{ProviderOpenWeatherMap, ProviderWeatherAPI}
}

// ParseProviderName maps a raw string onto a supported provider name.
func ParseProviderName(raw string) (ProviderName, error) {
	name := ProviderName(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ProviderNames() {
		if name == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown provider %q, expected one of %v", ErrConfiguration, raw, ProviderNames())
}

// EnvVar returns the environment variable holding the provider's API key,
// e.g. OPEN_WEATHER_MAP for open-weather-map.
func (n ProviderName) EnvVar() string {
	return strings.ReplaceAll(strings.ToUpper(string(n)), "-", "_")
}

func (n ProviderName) String() string { return string(n) }

// Credentials carries the API key a provider client authenticates with.
type Credentials struct {
	Provider ProviderName
	APIKey   string
}

// Configured reports whether an API key is present.
func (c Credentials) Configured() bool { return strings.TrimSpace(c.APIKey) != "" }

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI).
// Implementations normalize provider payloads into Report and classify every
// failure as one of the package error kinds.
type Provider interface {
	Name() ProviderName
	Fetch(ctx context.Context, q Query) (Report, error)
}
