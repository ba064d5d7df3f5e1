package weather

import (
	"context"
	"fmt"
	"log"
)

// Service routes queries to the configured provider clients. It validates
// input before any network call and keeps provider selection explicit: the
// caller names a provider, or asks for the default.
type Service struct {
	providers map[ProviderName]Provider
	order     []ProviderName
}

// NewService builds a service over the given provider clients. At least one
// provider must be supplied; an empty set means no API key was configured at
// all, which the caller cannot recover from at query time.
func NewService(providers ...Provider) (*Service, error) {
	s := &Service{providers: make(map[ProviderName]Provider, len(providers))}
	for _, p := range providers {
		name := p.Name()
		if _, dup := s.providers[name]; dup {
			return nil, fmt.Errorf("%w: provider %s registered twice", ErrConfiguration, name)
		}
		s.providers[name] = p
		s.order = append(s.order, name)
	}
	if len(s.providers) == 0 {
		return nil, fmt.Errorf("%w: no providers configured, set %s or %s",
			ErrConfiguration, ProviderOpenWeatherMap.EnvVar(), ProviderWeatherAPI.EnvVar())
	}
	return s, nil
}

// Providers lists the configured providers in registration order.
func (s *Service) Providers() []ProviderName {
	out := make([]ProviderName, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether the named provider is configured.
func (s *Service) Has(name ProviderName) bool {
	_, ok := s.providers[name]
	return ok
}

// DefaultProvider returns DefaultProviderName when it is configured, and the
// first configured provider otherwise.
func (s *Service) DefaultProvider() ProviderName {
	if s.Has(DefaultProviderName) {
		return DefaultProviderName
	}
	return s.order[0]
}

// Query fetches a weather report from the named provider. The query is
// validated first, so a malformed request never reaches the network.
func (s *Service) Query(ctx context.Context, name ProviderName, q Query) (Report, error) {
	if err := q.Validate(); err != nil {
		return Report{}, err
	}
	if q.Units == "" {
		q.Units = UnitsMetric
	}

	if name == "" {
		name = s.DefaultProvider()
	}
	if _, err := ParseProviderName(string(name)); err != nil {
		return Report{}, err
	}
	p, ok := s.providers[name]
	if !ok {
		return Report{}, fmt.Errorf("%w: provider %s has no API key, set %s", ErrConfiguration, name, name.EnvVar())
	}

	log.Printf("INFO: querying %s for %s", name, q.Location.String())
	report, err := p.Fetch(ctx, q)
	if err != nil {
		return Report{}, fmt.Errorf("provider %s: %w", name, err)
	}
	return report, nil
}
