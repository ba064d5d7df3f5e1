package weather

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestReportJSONRoundTrip verifies that a report survives JSON encoding with
// its UTC timestamp and unit block intact.
func TestReportJSONRoundTrip(t *testing.T) {
	in := Report{
		Provider: ProviderOpenWeatherMap,
		Location: ResolvedLocation{Name: "Kyiv", Country: "UA", Lat: 50.45, Lon: 30.52},
		// Unix keeps the instant exact; formatted times lose the monotonic clock anyway.
		Timestamp:     time.Unix(1688990400, 0).UTC(),
		Temperature:   21.3,
		FeelsLike:     20.8,
		Humidity:      56,
		Pressure:      1012,
		WindSpeed:     3.5,
		WindDegree:    180,
		Precipitation: 0.2,
		Condition:     ConditionCloudy,
		Description:   "scattered clouds",
		Units:         UnitsFor(UnitsMetric),
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out Report
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("expected %+v, got %+v", in, out)
	}

	if !strings.Contains(string(data), `"humidityPercent":56`) {
		t.Fatalf("expected explicit humidity field, got %s", data)
	}
}

// TestReportOmitsAbsentFields verifies that fields a provider cannot supply
// disappear from the JSON instead of showing misleading zeros.
func TestReportOmitsAbsentFields(t *testing.T) {
	r := Report{
		Provider:    ProviderWeatherAPI,
		Location:    ResolvedLocation{Name: "Lviv", Lat: 49.84, Lon: 24.03},
		Timestamp:   time.Unix(1688990400, 0).UTC(),
		Temperature: 18,
		Condition:   ConditionClear,
		Units:       UnitsFor(UnitsMetric),
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"feelsLike", "pressure", "windDegree", "precipitation", "description"} {
		if _, ok := fields[field]; ok {
			t.Fatalf("expected %s to be omitted, got %s", field, data)
		}
	}
}

// TestUnitsFor verifies the unit blocks for both systems and the metric
// fallback for anything unknown.
func TestUnitsFor(t *testing.T) {
	metric := UnitsFor(UnitsMetric)
	if metric.Temperature != "°C" || metric.WindSpeed != "m/s" || metric.Pressure != "hPa" || metric.Precipitation != "mm" {
		t.Fatalf("unexpected metric units: %+v", metric)
	}

	imperial := UnitsFor(UnitsImperial)
	if imperial.Temperature != "°F" || imperial.WindSpeed != "mph" || imperial.Pressure != "inHg" || imperial.Precipitation != "in" {
		t.Fatalf("unexpected imperial units: %+v", imperial)
	}

	if UnitsFor("") != metric {
		t.Fatalf("expected the empty system to fall back to metric")
	}
}

// TestProviderNameEnvVar verifies the provider name to environment variable
// mapping.
func TestProviderNameEnvVar(t *testing.T) {
	if got := ProviderOpenWeatherMap.EnvVar(); got != "OPEN_WEATHER_MAP" {
		t.Fatalf("expected OPEN_WEATHER_MAP, got %s", got)
	}
	if got := ProviderWeatherAPI.EnvVar(); got != "WEATHER_API" {
		t.Fatalf("expected WEATHER_API, got %s", got)
	}
}

// TestParseProviderName verifies name normalization and the rejection of
// unknown providers.
func TestParseProviderName(t *testing.T) {
	name, err := ParseProviderName(" Weather-API ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != ProviderWeatherAPI {
		t.Fatalf("expected %s, got %s", ProviderWeatherAPI, name)
	}

	if _, err := ParseProviderName("open-meteo"); err == nil {
		t.Fatalf("expected an error for an unknown provider")
	}
}
