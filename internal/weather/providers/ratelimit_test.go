package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/i474232898/weather-cli/internal/weather"
)

type fakeProvider struct {
	name    weather.ProviderName
	report  weather.Report
	fetches int
}

func (f *fakeProvider) Name() weather.ProviderName { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, q weather.Query) (weather.Report, error) {
	f.fetches++
	return f.report, nil
}

// TestRateLimitedPassthrough verifies that calls inside the budget are
// forwarded untouched and keep the inner provider's name.
func TestRateLimitedPassthrough(t *testing.T) {
	inner := &fakeProvider{
		name:   weather.ProviderOpenWeatherMap,
		report: weather.Report{Provider: weather.ProviderOpenWeatherMap, Temperature: 21.3},
	}
	limited := NewRateLimited(inner, 100, 10)

	if limited.Name() != weather.ProviderOpenWeatherMap {
		t.Fatalf("expected the inner provider's name, got %s", limited.Name())
	}

	report, err := limited.Fetch(context.Background(), weather.Query{Location: weather.ParseLocation("Kyiv")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Temperature != 21.3 {
		t.Fatalf("expected the inner report, got %+v", report)
	}
	if inner.fetches != 1 {
		t.Fatalf("expected one inner fetch, got %d", inner.fetches)
	}
}

// TestRateLimitedCanceledWait verifies that a wait that cannot be satisfied
// surfaces as a network error without calling the provider.
func TestRateLimitedCanceledWait(t *testing.T) {
	inner := &fakeProvider{name: weather.ProviderWeatherAPI}
	// After the single burst token is spent, the next admission is a second
	// away; a canceled context must fail the wait instead of hanging.
	limited := NewRateLimited(inner, 1, 1)
	if _, err := limited.Fetch(context.Background(), weather.Query{Location: weather.ParseLocation("Kyiv")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := limited.Fetch(ctx, weather.Query{Location: weather.ParseLocation("Kyiv")})
	if !errors.Is(err, weather.ErrNetwork) {
		t.Fatalf("expected a network error, got %v", err)
	}
	if inner.fetches != 1 {
		t.Fatalf("expected the canceled fetch not to reach the provider, got %d", inner.fetches)
	}
}
