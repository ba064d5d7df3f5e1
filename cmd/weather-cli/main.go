package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/i474232898/weather-cli/internal/cli"
	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/weather"
	"github.com/i474232898/weather-cli/internal/weather/providers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// Only providers with an API key are registered. Request rates stay
	// inside the free-plan quotas.
	var provs []weather.Provider
	if creds := cfg.Credentials(weather.ProviderOpenWeatherMap); creds.Configured() {
		provs = append(provs, providers.NewRateLimited(providers.NewOpenWeatherMap(httpClient, creds), 1, 5))
	}
	if creds := cfg.Credentials(weather.ProviderWeatherAPI); creds.Configured() {
		provs = append(provs, providers.NewRateLimited(providers.NewWeatherAPI(httpClient, creds), 0.4, 3))
	}

	service, err := weather.NewService(provs...)
	if err != nil {
		return err
	}

	return cli.New(service).Execute(ctx, args)
}
