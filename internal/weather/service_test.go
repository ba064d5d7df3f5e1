package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type stubProvider struct {
	name    ProviderName
	report  Report
	err     error
	fetches int
	lastQ   Query
}

func (s *stubProvider) Name() ProviderName { return s.name }

func (s *stubProvider) Fetch(ctx context.Context, q Query) (Report, error) {
	s.fetches++
	s.lastQ = q
	if s.err != nil {
		return Report{}, s.err
	}
	return s.report, nil
}

// TestServiceRoutesToNamedProvider verifies that a query reaches exactly the
// provider the caller picked.
func TestServiceRoutesToNamedProvider(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap, report: Report{Provider: ProviderOpenWeatherMap}}
	wapi := &stubProvider{name: ProviderWeatherAPI, report: Report{Provider: ProviderWeatherAPI}}
	svc, err := NewService(owm, wapi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := svc.Query(context.Background(), ProviderWeatherAPI, Query{Location: Location{Name: "Kyiv"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Provider != ProviderWeatherAPI {
		t.Fatalf("expected a weather-api report, got %s", report.Provider)
	}
	if wapi.fetches != 1 || owm.fetches != 0 {
		t.Fatalf("expected exactly one weather-api fetch, got owm=%d wapi=%d", owm.fetches, wapi.fetches)
	}
}

// TestServiceDefaultProvider verifies the default selection: open-weather-map
// when configured, otherwise the first configured provider.
func TestServiceDefaultProvider(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap}
	wapi := &stubProvider{name: ProviderWeatherAPI}

	svc, err := NewService(wapi, owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.DefaultProvider(); got != ProviderOpenWeatherMap {
		t.Fatalf("expected %s, got %s", ProviderOpenWeatherMap, got)
	}

	svc, err = NewService(wapi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.DefaultProvider(); got != ProviderWeatherAPI {
		t.Fatalf("expected %s, got %s", ProviderWeatherAPI, got)
	}

	// An empty name routes to the default.
	if _, err := svc.Query(context.Background(), "", Query{Location: Location{Name: "Kyiv"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wapi.fetches != 1 {
		t.Fatalf("expected the default provider to be fetched, got %d", wapi.fetches)
	}
}

// TestServiceRejectsUnknownProvider verifies that an unsupported name fails
// as a configuration error without touching any provider.
func TestServiceRejectsUnknownProvider(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap}
	svc, err := NewService(owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Query(context.Background(), "open-meteo", Query{Location: Location{Name: "Kyiv"}})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	if owm.fetches != 0 {
		t.Fatalf("expected no fetches, got %d", owm.fetches)
	}
}

// TestServiceRejectsUnconfiguredProvider verifies that asking for a known
// provider without an API key names the missing environment variable.
func TestServiceRejectsUnconfiguredProvider(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap}
	svc, err := NewService(owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Query(context.Background(), ProviderWeatherAPI, Query{Location: Location{Name: "Kyiv"}})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "WEATHER_API") {
		t.Fatalf("expected the error to name WEATHER_API, got %v", err)
	}
}

// TestServiceValidatesBeforeDispatch verifies that an invalid query never
// reaches a provider.
func TestServiceValidatesBeforeDispatch(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap}
	svc, err := NewService(owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Query(context.Background(), ProviderOpenWeatherMap, Query{})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	if owm.fetches != 0 {
		t.Fatalf("expected no fetches for an invalid query, got %d", owm.fetches)
	}
}

// TestServiceKeepsProviderErrorKind verifies that provider failures keep
// their kind through the service layer.
func TestServiceKeepsProviderErrorKind(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap, err: fmt.Errorf("%w: status 401", ErrAuth)}
	svc, err := NewService(owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Query(context.Background(), ProviderOpenWeatherMap, Query{Location: Location{Name: "Kyiv"}})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected an auth error, got %v", err)
	}
}

// TestServiceAppliesMetricDefault verifies that queries without a unit
// system are dispatched as metric.
func TestServiceAppliesMetricDefault(t *testing.T) {
	owm := &stubProvider{name: ProviderOpenWeatherMap}
	svc, err := NewService(owm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Query(context.Background(), ProviderOpenWeatherMap, Query{Location: Location{Name: "Kyiv"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owm.lastQ.Units != UnitsMetric {
		t.Fatalf("expected metric units, got %q", owm.lastQ.Units)
	}
}

// TestNewServiceRequiresProviders verifies that building a service without
// any provider fails and names both key variables.
func TestNewServiceRequiresProviders(t *testing.T) {
	_, err := NewService()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "OPEN_WEATHER_MAP") || !strings.Contains(err.Error(), "WEATHER_API") {
		t.Fatalf("expected the error to name both key variables, got %v", err)
	}

	owm := &stubProvider{name: ProviderOpenWeatherMap}
	if _, err := NewService(owm, owm); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a duplicate registration error, got %v", err)
	}
}
