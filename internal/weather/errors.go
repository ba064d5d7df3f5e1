package weather

import "errors"

// Error kinds surfaced by provider clients and the service. Every failure
// returned from this package wraps exactly one of them, so callers can
// branch with errors.Is without losing the original message.
var (
	// ErrConfiguration covers unusable local input: absent API keys,
	// invalid queries, locations that resolve to no geographic point, and
	// requests a provider rejects as malformed.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuth is returned when a provider rejects the configured key.
	ErrAuth = errors.New("provider rejected credentials")

	// ErrNetwork covers transport failures, timeouts and provider-side
	// unavailability (throttling, 5xx, open circuit).
	ErrNetwork = errors.New("network failure")

	// ErrParse is returned when a provider response body cannot be decoded
	// or misses the blocks a report is built from.
	ErrParse = errors.New("unexpected provider response")
)
