package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

// OpenWeatherMap talks to the One Call 3.0 API. Name-based locations are
// resolved to a single point through the geocoding endpoint first; queries
// for a specific day go through the timemachine endpoint, which covers the
// historical archive and a few days ahead.
type OpenWeatherMap struct {
	creds   weather.Credentials
	geoURL  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Provider = (*OpenWeatherMap)(nil)

func NewOpenWeatherMap(client *http.Client, creds weather.Credentials) *OpenWeatherMap {
	return &OpenWeatherMap{
		creds:   creds,
		geoURL:  "https://api.openweathermap.org/geo/1.0/direct",
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		client:  client,
		circuit: newBreaker(string(weather.ProviderOpenWeatherMap)),
	}
}

func (p *OpenWeatherMap) Name() weather.ProviderName { return weather.ProviderOpenWeatherMap }

func (p *OpenWeatherMap) Fetch(ctx context.Context, q weather.Query) (weather.Report, error) {
	if !p.creds.Configured() {
		return weather.Report{}, fmt.Errorf("%w: %s API key is empty", weather.ErrConfiguration, weather.ProviderOpenWeatherMap)
	}

	place, err := p.resolve(ctx, q.Location)
	if err != nil {
		return weather.Report{}, err
	}

	if q.Timed() {
		return p.fetchTimed(ctx, place, q)
	}
	return p.fetchCurrent(ctx, place, q)
}

type geoPlace struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// resolve turns the queried location into a single geographic point. Queries
// that already carry coordinates skip the geocoding call.
func (p *OpenWeatherMap) resolve(ctx context.Context, loc weather.Location) (geoPlace, error) {
	if loc.Coords != nil {
		return geoPlace{Name: loc.String(), Lat: loc.Coords.Lat, Lon: loc.Coords.Lon}, nil
	}

	values := url.Values{}
	values.Set("q", loc.Name)
	values.Set("limit", "1")
	values.Set("appid", p.creds.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.geoURL+"?"+values.Encode(), nil)
	if err != nil {
		return geoPlace{}, fmt.Errorf("%w: building geocoding request: %v", weather.ErrConfiguration, err)
	}

	resp, err := doRequest(p.client, p.circuit, req)
	if err != nil {
		return geoPlace{}, err
	}
	defer resp.Body.Close()

	var places []geoPlace
	if err := decodeBody(resp.Body, &places); err != nil {
		return geoPlace{}, err
	}
	if len(places) == 0 {
		return geoPlace{}, fmt.Errorf("%w: no coordinates found for %q", weather.ErrConfiguration, loc.Name)
	}
	return places[0], nil
}

func (p *OpenWeatherMap) fetchCurrent(ctx context.Context, place geoPlace, q weather.Query) (weather.Report, error) {
	values := p.baseValues(place, q)
	values.Set("exclude", "minutely,hourly,daily")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return weather.Report{}, fmt.Errorf("%w: building request: %v", weather.ErrConfiguration, err)
	}

	resp, err := doRequest(p.client, p.circuit, req)
	if err != nil {
		return weather.Report{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current owmPoint `json:"current"`
	}
	if err := decodeBody(resp.Body, &payload); err != nil {
		return weather.Report{}, err
	}
	return p.report(place, q, payload.Current), nil
}

func (p *OpenWeatherMap) fetchTimed(ctx context.Context, place geoPlace, q weather.Query) (weather.Report, error) {
	day, err := q.Day()
	if err != nil {
		return weather.Report{}, err
	}

	values := p.baseValues(place, q)
	values.Set("dt", strconv.FormatInt(midday(day).Unix(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/timemachine?"+values.Encode(), nil)
	if err != nil {
		return weather.Report{}, fmt.Errorf("%w: building request: %v", weather.ErrConfiguration, err)
	}

	resp, err := doRequest(p.client, p.circuit, req)
	if err != nil {
		return weather.Report{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data []owmPoint `json:"data"`
	}
	if err := decodeBody(resp.Body, &payload); err != nil {
		return weather.Report{}, err
	}
	if len(payload.Data) == 0 {
		return weather.Report{}, fmt.Errorf("%w: no data for %s, the date may be outside the supported range", weather.ErrParse, q.Date)
	}
	return p.report(place, q, payload.Data[0]), nil
}

func (p *OpenWeatherMap) baseValues(place geoPlace, q weather.Query) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(place.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(place.Lon, 'f', -1, 64))
	values.Set("units", string(q.Units))
	values.Set("appid", p.creds.APIKey)
	return values
}

// owmPoint is the shape shared by the "current" block and timemachine
// "data" entries.
type owmPoint struct {
	Dt        int64   `json:"dt"`
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	WindDeg   int     `json:"wind_deg"`
	Rain      struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneH float64 `json:"1h"`
	} `json:"snow"`
	Weather []owmConditionTag `json:"weather"`
}

type owmConditionTag struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

func (p *OpenWeatherMap) report(place geoPlace, q weather.Query, pt owmPoint) weather.Report {
	precip := pt.Rain.OneH + pt.Snow.OneH
	pressure := pt.Pressure
	if q.Units == weather.UnitsImperial {
		pressure = hPaToInHg(pressure)
		precip = mmToInches(precip)
	}

	condition, description := mapOpenWeatherCondition(pt.Weather)

	ts := time.Unix(pt.Dt, 0).UTC()
	if pt.Dt == 0 {
		ts = time.Now().UTC()
	}

	return weather.Report{
		Provider: weather.ProviderOpenWeatherMap,
		Location: weather.ResolvedLocation{
			Name:    place.Name,
			Region:  place.State,
			Country: place.Country,
			Lat:     place.Lat,
			Lon:     place.Lon,
		},
		Timestamp:     ts,
		Temperature:   pt.Temp,
		FeelsLike:     pt.FeelsLike,
		Humidity:      pt.Humidity,
		Pressure:      pressure,
		WindSpeed:     pt.WindSpeed,
		WindDegree:    pt.WindDeg,
		Precipitation: precip,
		Condition:     condition,
		Description:   description,
		Units:         weather.UnitsFor(q.Units),
	}
}

func mapOpenWeatherCondition(items []owmConditionTag) (weather.Condition, string) {
	if len(items) == 0 {
		return weather.ConditionUnknown, ""
	}

	var cond weather.Condition
	switch items[0].Main {
	case "Clear":
		cond = weather.ConditionClear
	case "Clouds":
		cond = weather.ConditionCloudy
	case "Rain", "Drizzle":
		cond = weather.ConditionRain
	case "Snow":
		cond = weather.ConditionSnow
	case "Thunderstorm":
		cond = weather.ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke":
		cond = weather.ConditionMist
	default:
		cond = weather.ConditionUnknown
	}
	return cond, items[0].Description
}

// midday pins a calendar day to 12:00 UTC, the sampling instant used for
// timemachine lookups.
func midday(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
}
