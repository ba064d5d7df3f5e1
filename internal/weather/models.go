package weather

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted form for timed queries, e.g. 2023-03-31.
const DateLayout = "2006-01-02"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// UnitSystem selects the units a report is expressed in.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// Units names the unit of every numeric report field. Reports always carry
// it so a value is never read without its unit.
type Units struct {
	Temperature   string `json:"temperature"`
	WindSpeed     string `json:"windSpeed"`
	Pressure      string `json:"pressure"`
	Precipitation string `json:"precipitation"`
	Humidity      string `json:"humidity"`
}

// UnitsFor returns the unit block for a unit system. Unknown systems fall
// back to metric, which is also what providers are asked for by default.
func UnitsFor(system UnitSystem) Units {
	if system == UnitsImperial {
		return Units{
			Temperature:   "°F",
			WindSpeed:     "mph",
			Pressure:      "inHg",
			Precipitation: "in",
			Humidity:      "%",
		}
	}
	return Units{
		Temperature:   "°C",
		WindSpeed:     "m/s",
		Pressure:      "hPa",
		Precipitation: "mm",
		Humidity:      "%",
	}
}

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Location is the place a query asks about: a free-text name ("Kyiv",
// "Mykolaiv, Lviv oblast") or explicit coordinates.
type Location struct {
	Name   string       `json:"name,omitempty" validate:"required_without=Coords"`
	Coords *Coordinates `json:"coords,omitempty"`
}

// String returns the form providers accept in their location parameter.
func (l Location) String() string {
	if l.Coords != nil {
		return l.Coords.String()
	}
	return l.Name
}

// ParseLocation interprets raw user input either as "lat,lon" coordinates or
// as a place name. "49.84,24.03" becomes coordinates; "Kyiv,UA" stays a name.
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	if parts := strings.Split(raw, ","); len(parts) == 2 {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if latErr == nil && lonErr == nil {
			return Location{Name: raw, Coords: &Coordinates{Lat: lat, Lon: lon}}
		}
	}
	return Location{Name: raw}
}

// ResolvedLocation is the single geographic point a report is about, as the
// serving provider resolved it.
type ResolvedLocation struct {
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Report is the normalized weather record produced by every provider.
// Timestamps are always UTC; numeric fields are expressed in Units. Fields a
// provider cannot supply stay zero and are omitted from JSON. A Report is
// never mutated after the adapter builds it.
type Report struct {
	Provider      ProviderName     `json:"provider"`
	Location      ResolvedLocation `json:"location"`
	Timestamp     time.Time        `json:"timestamp"`
	Temperature   float64          `json:"temperature"`
	FeelsLike     float64          `json:"feelsLike,omitempty"`
	Humidity      float64          `json:"humidityPercent,omitempty"`
	Pressure      float64          `json:"pressure,omitempty"`
	WindSpeed     float64          `json:"windSpeed,omitempty"`
	WindDegree    int              `json:"windDegree,omitempty"`
	Precipitation float64          `json:"precipitation,omitempty"`
	Condition     Condition        `json:"condition"`
	Description   string           `json:"description,omitempty"`
	Units         Units            `json:"units"`
}
