package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-cli/internal/weather"
)

// RateLimited wraps a provider with a client-side request budget so bursts
// of prompt commands stay inside the free-plan quotas. Waiting delays the
// call; it never drops or repeats it.
type RateLimited struct {
	inner   weather.Provider
	limiter *rate.Limiter
}

var _ weather.Provider = (*RateLimited)(nil)

func NewRateLimited(inner weather.Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (p *RateLimited) Name() weather.ProviderName { return p.inner.Name() }

func (p *RateLimited) Fetch(ctx context.Context, q weather.Query) (weather.Report, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return weather.Report{}, fmt.Errorf("%w: rate limit wait interrupted: %v", weather.ErrNetwork, err)
	}
	return p.inner.Fetch(ctx, q)
}
