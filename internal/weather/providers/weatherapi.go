package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/common"
	"github.com/i474232898/weather-cli/internal/weather"
)

// WeatherAPI talks to the WeatherAPI.com v1 REST endpoints. The service has
// no single time-travel call: current conditions, future days and past days
// live under current.json, forecast.json and history.json, so Fetch routes
// by the queried day.
type WeatherAPI struct {
	creds   weather.Credentials
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

var _ weather.Provider = (*WeatherAPI)(nil)

func NewWeatherAPI(client *http.Client, creds weather.Credentials) *WeatherAPI {
	return &WeatherAPI{
		creds:   creds,
		baseURL: "https://api.weatherapi.com/v1",
		client:  client,
		circuit: newBreaker(string(weather.ProviderWeatherAPI)),
		now:     time.Now,
	}
}

func (p *WeatherAPI) Name() weather.ProviderName { return weather.ProviderWeatherAPI }

func (p *WeatherAPI) Fetch(ctx context.Context, q weather.Query) (weather.Report, error) {
	if !p.creds.Configured() {
		return weather.Report{}, fmt.Errorf("%w: %s API key is empty", weather.ErrConfiguration, weather.ProviderWeatherAPI)
	}

	if !q.Timed() {
		return p.fetchCurrent(ctx, q)
	}

	day, err := q.Day()
	if err != nil {
		return weather.Report{}, err
	}
	if offset := daysFrom(p.now().UTC(), day); offset >= 0 {
		return p.fetchForecast(ctx, q, offset)
	}
	return p.fetchHistory(ctx, q)
}

func (p *WeatherAPI) fetchCurrent(ctx context.Context, q weather.Query) (weather.Report, error) {
	values := p.baseValues(q)
	values.Set("aqi", "no")

	var payload struct {
		Location wapiLocation `json:"location"`
		Current  wapiPoint    `json:"current"`
	}
	if err := p.get(ctx, "/current.json", values, &payload); err != nil {
		return weather.Report{}, err
	}
	return p.report(payload.Location, q, payload.Current)
}

// fetchForecast asks for every day from today up to the queried one and
// reads the last entry. The plan's horizon may be shorter than requested;
// the API then silently answers with fewer days, which is reported as a
// missing day rather than the wrong one.
func (p *WeatherAPI) fetchForecast(ctx context.Context, q weather.Query, offset int) (weather.Report, error) {
	values := p.baseValues(q)
	values.Set("days", strconv.Itoa(offset+1))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload struct {
		Location wapiLocation `json:"location"`
		Forecast struct {
			ForecastDay []wapiForecastDay `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := p.get(ctx, "/forecast.json", values, &payload); err != nil {
		return weather.Report{}, err
	}

	days := payload.Forecast.ForecastDay
	if len(days) == 0 {
		return weather.Report{}, fmt.Errorf("%w: no forecast data for %s", weather.ErrParse, q.Date)
	}
	last := days[len(days)-1]
	if last.Date != q.Date {
		return weather.Report{}, fmt.Errorf("%w: no forecast for %s, the horizon ends at %s", weather.ErrParse, q.Date, last.Date)
	}
	return p.dayReport(payload.Location, q, last)
}

func (p *WeatherAPI) fetchHistory(ctx context.Context, q weather.Query) (weather.Report, error) {
	values := p.baseValues(q)
	values.Set("dt", q.Date)

	var payload struct {
		Location wapiLocation `json:"location"`
		Forecast struct {
			ForecastDay []wapiForecastDay `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := p.get(ctx, "/history.json", values, &payload); err != nil {
		return weather.Report{}, err
	}
	if len(payload.Forecast.ForecastDay) == 0 {
		return weather.Report{}, fmt.Errorf("%w: no history data for %s", weather.ErrParse, q.Date)
	}
	return p.dayReport(payload.Location, q, payload.Forecast.ForecastDay[0])
}

func (p *WeatherAPI) get(ctx context.Context, path string, values url.Values, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", weather.ErrConfiguration, err)
	}

	resp, err := doRequest(p.client, p.circuit, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp.Body, dst)
}

func (p *WeatherAPI) baseValues(q weather.Query) url.Values {
	values := url.Values{}
	values.Set("key", p.creds.APIKey)
	values.Set("q", q.Location.String())
	return values
}

type wapiLocation struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type wapiCondition struct {
	Text string `json:"text"`
}

// wapiPoint is the current.json "current" block. WeatherAPI sends metric and
// imperial variants side by side; the adapter picks per the queried units.
type wapiPoint struct {
	LastUpdatedEpoch int64         `json:"last_updated_epoch"`
	TempC            float64       `json:"temp_c"`
	TempF            float64       `json:"temp_f"`
	FeelslikeC       float64       `json:"feelslike_c"`
	FeelslikeF       float64       `json:"feelslike_f"`
	Humidity         float64       `json:"humidity"`
	WindKph          float64       `json:"wind_kph"`
	WindMph          float64       `json:"wind_mph"`
	WindDegree       int           `json:"wind_degree"`
	PressureMb       float64       `json:"pressure_mb"`
	PressureIn       float64       `json:"pressure_in"`
	PrecipMm         float64       `json:"precip_mm"`
	PrecipIn         float64       `json:"precip_in"`
	Condition        wapiCondition `json:"condition"`
}

// wapiForecastDay is shared by forecast.json and history.json. The "day"
// aggregate carries no pressure, feel or wind direction, so those report
// fields stay empty for timed queries.
type wapiForecastDay struct {
	Date      string `json:"date"`
	DateEpoch int64  `json:"date_epoch"`
	Day       struct {
		AvgtempC      float64       `json:"avgtemp_c"`
		AvgtempF      float64       `json:"avgtemp_f"`
		Avghumidity   float64       `json:"avghumidity"`
		MaxwindKph    float64       `json:"maxwind_kph"`
		MaxwindMph    float64       `json:"maxwind_mph"`
		TotalprecipMm float64       `json:"totalprecip_mm"`
		TotalprecipIn float64       `json:"totalprecip_in"`
		Condition     wapiCondition `json:"condition"`
	} `json:"day"`
}

func (p *WeatherAPI) report(loc wapiLocation, q weather.Query, pt wapiPoint) (weather.Report, error) {
	if loc.Name == "" {
		return weather.Report{}, fmt.Errorf("%w: response carries no location block", weather.ErrParse)
	}

	ts := time.Unix(pt.LastUpdatedEpoch, 0).UTC()
	if pt.LastUpdatedEpoch == 0 {
		ts = p.now().UTC()
	}

	r := weather.Report{
		Provider:    weather.ProviderWeatherAPI,
		Location:    resolvedLocation(loc),
		Timestamp:   ts,
		Humidity:    pt.Humidity,
		WindDegree:  pt.WindDegree,
		Condition:   mapWeatherAPICondition(pt.Condition.Text),
		Description: pt.Condition.Text,
		Units:       weather.UnitsFor(q.Units),
	}
	if q.Units == weather.UnitsImperial {
		r.Temperature = pt.TempF
		r.FeelsLike = pt.FeelslikeF
		r.WindSpeed = pt.WindMph
		r.Pressure = pt.PressureIn
		r.Precipitation = pt.PrecipIn
	} else {
		r.Temperature = pt.TempC
		r.FeelsLike = pt.FeelslikeC
		r.WindSpeed = kphToMetersPerSecond(pt.WindKph)
		r.Pressure = pt.PressureMb
		r.Precipitation = pt.PrecipMm
	}
	return r, nil
}

func (p *WeatherAPI) dayReport(loc wapiLocation, q weather.Query, day wapiForecastDay) (weather.Report, error) {
	if loc.Name == "" {
		return weather.Report{}, fmt.Errorf("%w: response carries no location block", weather.ErrParse)
	}

	ts := midday(time.Unix(day.DateEpoch, 0).UTC())
	if day.DateEpoch == 0 {
		parsed, err := time.Parse(weather.DateLayout, day.Date)
		if err != nil {
			return weather.Report{}, fmt.Errorf("%w: bad forecast date %q", weather.ErrParse, day.Date)
		}
		ts = midday(parsed)
	}

	r := weather.Report{
		Provider:    weather.ProviderWeatherAPI,
		Location:    resolvedLocation(loc),
		Timestamp:   ts,
		Humidity:    day.Day.Avghumidity,
		Condition:   mapWeatherAPICondition(day.Day.Condition.Text),
		Description: day.Day.Condition.Text,
		Units:       weather.UnitsFor(q.Units),
	}
	if q.Units == weather.UnitsImperial {
		r.Temperature = day.Day.AvgtempF
		r.WindSpeed = day.Day.MaxwindMph
		r.Precipitation = day.Day.TotalprecipIn
	} else {
		r.Temperature = day.Day.AvgtempC
		r.WindSpeed = kphToMetersPerSecond(day.Day.MaxwindKph)
		r.Precipitation = day.Day.TotalprecipMm
	}
	return r, nil
}

func resolvedLocation(loc wapiLocation) weather.ResolvedLocation {
	return weather.ResolvedLocation{
		Name:    loc.Name,
		Region:  loc.Region,
		Country: loc.Country,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
}

func mapWeatherAPICondition(text string) weather.Condition {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return weather.ConditionUnknown
	case common.HasAny(t, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice"):
		return weather.ConditionSnow
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(t, "mist", "fog", "haze"):
		return weather.ConditionMist
	case common.HasAny(t, "cloud", "overcast"):
		return weather.ConditionCloudy
	case common.HasAny(t, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}

// daysFrom counts whole calendar days from the current UTC date to day.
func daysFrom(now, day time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}
