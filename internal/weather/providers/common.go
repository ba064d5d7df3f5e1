package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest performs a single HTTP attempt guarded by the circuit breaker.
// Only transport failures, throttling and 5xx count against the breaker;
// rejections caused by the request itself (bad key, bad location) pass
// through so a misconfigured client cannot open the circuit.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, doErr := client.Do(req)
		if doErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, doErr)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			detail := errorDetail(resp.Body)
			resp.Body.Close()
			return nil, classifyStatus(resp.StatusCode, detail)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open for %s, skipping call", weather.ErrNetwork, cb.Name())
		}
		return nil, err
	}

	resp := result.(*http.Response)
	if resp.StatusCode != http.StatusOK {
		detail := errorDetail(resp.Body)
		resp.Body.Close()
		return nil, classifyStatus(resp.StatusCode, detail)
	}
	return resp, nil
}

// classifyStatus maps a non-OK provider status onto an error kind.
func classifyStatus(status int, detail string) error {
	msg := strings.TrimSpace(detail)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "check the API key"
		}
		return fmt.Errorf("%w: status %d: %s", weather.ErrAuth, status, msg)
	case http.StatusBadRequest, http.StatusNotFound:
		if msg == "" {
			msg = "request rejected"
		}
		return fmt.Errorf("%w: status %d: %s", weather.ErrConfiguration, status, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: provider rate limit exceeded", weather.ErrNetwork, status)
	default:
		return fmt.Errorf("%w: unexpected status %d", weather.ErrNetwork, status)
	}
}

// errorDetail pulls the human-readable message out of a provider error body.
// OpenWeatherMap answers {"cod":..,"message":".."}, WeatherAPI answers
// {"error":{"code":..,"message":".."}}; anything else is ignored.
func errorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(body) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return ""
}

func decodeBody(r io.Reader, dst interface{}) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("%w: decoding body: %v", weather.ErrParse, err)
	}
	return nil
}

// OpenWeatherMap reports pressure in hPa and precipitation in mm regardless
// of the requested unit system, and WeatherAPI's metric wind comes in km/h.
// The conversions below normalize those fields.
func hPaToInHg(v float64) float64 { return v * 0.02953 }

func mmToInches(v float64) float64 { return v / 25.4 }

func kphToMetersPerSecond(v float64) float64 { return v / 3.6 }
