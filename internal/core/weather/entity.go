package weather

import (
	"fmt"
	"strings"
	"time"

	"cityweather.app/pkg/validation"
)

// Units represents the measurement system requested from the provider
type Units int

const (
	UnitsStandard Units = iota
	UnitsMetric
	UnitsImperial
)

// String returns the provider's name for the unit system
func (u Units) String() string {
	switch u {
	case UnitsMetric:
		return "metric"
	case UnitsImperial:
		return "imperial"
	default:
		return "standard"
	}
}

// Letter returns the temperature letter shown next to values
func (u Units) Letter() string {
	return UnitLetter(u.String())
}

// UnitLetter maps a units value to its temperature letter. Anything that is
// neither imperial nor metric is Kelvin.
func UnitLetter(units string) string {
	switch units {
	case "imperial":
		return "F"
	case "metric":
		return "C"
	default:
		return "K"
	}
}

// ParseUnits converts a query value to Units. In strict mode empty or unknown
// values are rejected; otherwise they fall back to standard.
func ParseUnits(value string, strict bool) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "metric":
		return UnitsMetric, nil
	case "imperial":
		return UnitsImperial, nil
	case "standard":
		return UnitsStandard, nil
	case "":
		if strict {
			return UnitsStandard, fmt.Errorf("units parameter is required")
		}
		return UnitsStandard, nil
	default:
		if strict {
			return UnitsStandard, fmt.Errorf("units must be one of: metric, imperial, standard")
		}
		return UnitsStandard, nil
	}
}

// WeatherQuery represents a single-city lookup
type WeatherQuery struct {
	City  string
	Units string
}

// ComparisonQuery represents a two-city lookup
type ComparisonQuery struct {
	City1 string
	City2 string
	Units string
}

// IsValid validates weather query
func (q *WeatherQuery) IsValid() error {
	if !validation.IsNotEmpty(q.City) {
		return fmt.Errorf("city parameter is required")
	}
	return nil
}

// NormalizeCity normalizes city name for consistent processing
func (q *WeatherQuery) NormalizeCity() {
	q.City = strings.TrimSpace(q.City)
}

// ReportView is everything the results page shows for one city
type ReportView struct {
	Date        time.Time
	City        string
	Description string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Sunrise     time.Time
	Sunset      time.Time
	UnitsLetter string
}

// CitySummary is one column of the comparison page
type CitySummary struct {
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	SunsetHour  int
}

// ComparisonView is everything the comparison page shows
type ComparisonView struct {
	Date        time.Time
	City1       string
	City2       string
	City1Info   CitySummary
	City2Info   CitySummary
	UnitsLetter string
}

// HomeView carries the date bounds for the historical lookup form
type HomeView struct {
	MinDate time.Time
	MaxDate time.Time
}

// HistoryWindow is how far back the home page date picker reaches
const HistoryWindow = 5 * 24 * time.Hour

// NewHomeView builds the date range ending at now
func NewHomeView(now time.Time) HomeView {
	return HomeView{
		MinDate: now.Add(-HistoryWindow),
		MaxDate: now,
	}
}

// SunsetHour returns the hour of day of t in loc
func SunsetHour(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

// CityLookupError reports which comparison slot failed
type CityLookupError struct {
	Slot string
	City string
	Err  error
}

func (e *CityLookupError) Error() string {
	if e.City == "" {
		return fmt.Sprintf("%s: %v", e.Slot, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Slot, e.City, e.Err)
}

func (e *CityLookupError) Unwrap() error {
	return e.Err
}
