package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-cli/internal/weather"
)

// AppConfig carries everything the CLI reads from the environment. API keys
// are optional individually; a provider without a key is simply not
// registered.
type AppConfig struct {
	OpenWeatherMapKey string
	WeatherAPIKey     string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and the process
// environment. Variables already set in the environment win over the file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherMapKey: os.Getenv(weather.ProviderOpenWeatherMap.EnvVar()),
		WeatherAPIKey:     os.Getenv(weather.ProviderWeatherAPI.EnvVar()),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid HTTP_TIMEOUT %q: %v", weather.ErrConfiguration, timeoutStr, err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// Credentials returns the stored API key for a provider.
func (c *AppConfig) Credentials(name weather.ProviderName) weather.Credentials {
	creds := weather.Credentials{Provider: name}
	switch name {
	case weather.ProviderOpenWeatherMap:
		creds.APIKey = c.OpenWeatherMapKey
	case weather.ProviderWeatherAPI:
		creds.APIKey = c.WeatherAPIKey
	}
	return creds
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
