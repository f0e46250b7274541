package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"cityweather.app/internal/ports"
	"cityweather.app/pkg/errors"
)

// Comparison slots as they appear in the query string
const (
	SlotCity1 = "city1"
	SlotCity2 = "city2"
)

type UseCase struct {
	weatherProvider ports.WeatherProvider
	config          ports.ConfigProvider
	logger          ports.Logger
	now             func() time.Time
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Config          ports.ConfigProvider
	Logger          ports.Logger
	// Clock defaults to time.Now
	Clock func() time.Time
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		config:          deps.Config,
		logger:          deps.Logger,
		now:             clock,
	}, nil
}

// Home returns the date bounds for the home page form
func (uc *UseCase) Home(ctx context.Context) HomeView {
	return NewHomeView(uc.now())
}

// GetReport looks up one city and projects it into the results view
func (uc *UseCase) GetReport(ctx context.Context, query WeatherQuery) (*ReportView, error) {
	if err := query.IsValid(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	query.NormalizeCity()

	units, err := ParseUnits(query.Units, uc.config.GetWeatherConfig().StrictUnits)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uc.logger.Debug("Getting weather report",
		ports.F("city", query.City),
		ports.F("units", units.String()))

	observation, err := uc.fetch(ctx, query.City, units)
	if err != nil {
		uc.logger.Error("Failed to get weather report",
			ports.F("city", query.City),
			ports.F("error", err))
		return nil, fmt.Errorf("get weather for city %s: %w", query.City, err)
	}

	loc := uc.locationFor(observation)
	return &ReportView{
		Date:        uc.now(),
		City:        observation.Location,
		Description: observation.Description,
		Temperature: observation.Temperature,
		Humidity:    observation.Humidity,
		WindSpeed:   observation.WindSpeed,
		Sunrise:     observation.Sunrise.In(loc),
		Sunset:      observation.Sunset.In(loc),
		UnitsLetter: units.Letter(),
	}, nil
}

// Compare looks up both cities concurrently. When either lookup fails the
// returned error is a *multierror.Error of *CityLookupError, one per failed slot.
func (uc *UseCase) Compare(ctx context.Context, query ComparisonQuery) (*ComparisonView, error) {
	first := WeatherQuery{City: query.City1}
	second := WeatherQuery{City: query.City2}

	var invalid *multierror.Error
	if err := first.IsValid(); err != nil {
		invalid = multierror.Append(invalid, &CityLookupError{
			Slot: SlotCity1,
			Err:  errors.NewValidationError("city1 parameter is required"),
		})
	}
	if err := second.IsValid(); err != nil {
		invalid = multierror.Append(invalid, &CityLookupError{
			Slot: SlotCity2,
			Err:  errors.NewValidationError("city2 parameter is required"),
		})
	}
	if err := invalid.ErrorOrNil(); err != nil {
		return nil, err
	}
	first.NormalizeCity()
	second.NormalizeCity()

	units, err := ParseUnits(query.Units, uc.config.GetWeatherConfig().StrictUnits)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uc.logger.Debug("Comparing cities",
		ports.F("city1", first.City),
		ports.F("city2", second.City),
		ports.F("units", units.String()))

	var (
		wg           sync.WaitGroup
		observations [2]*ports.Observation
		failures     [2]error
	)
	for i, city := range []string{first.City, second.City} {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			observations[i], failures[i] = uc.fetch(ctx, city, units)
		}(i, city)
	}
	wg.Wait()

	var result *multierror.Error
	for i, slot := range []string{SlotCity1, SlotCity2} {
		if failures[i] == nil {
			continue
		}
		city := first.City
		if i == 1 {
			city = second.City
		}
		uc.logger.Warn("City lookup failed",
			ports.F("slot", slot),
			ports.F("city", city),
			ports.F("error", failures[i]))
		result = multierror.Append(result, &CityLookupError{Slot: slot, City: city, Err: failures[i]})
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &ComparisonView{
		Date:        uc.now(),
		City1:       first.City,
		City2:       second.City,
		City1Info:   uc.summarize(observations[0]),
		City2Info:   uc.summarize(observations[1]),
		UnitsLetter: units.Letter(),
	}, nil
}

func (uc *UseCase) summarize(observation *ports.Observation) CitySummary {
	return CitySummary{
		Temperature: observation.Temperature,
		Humidity:    observation.Humidity,
		WindSpeed:   observation.WindSpeed,
		SunsetHour:  SunsetHour(observation.Sunset, uc.locationFor(observation)),
	}
}

func (uc *UseCase) fetch(ctx context.Context, city string, units Units) (*ports.Observation, error) {
	if timeout := uc.config.GetWeatherConfig().RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	observation, err := uc.weatherProvider.GetCurrentWeather(ctx, ports.WeatherQuery{
		City:  city,
		Units: units.String(),
	})
	if err != nil {
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("weather provider failed", err)
	}
	if observation == nil {
		return nil, errors.NewNotFoundError("city not found")
	}
	return observation, nil
}

// locationFor returns the configured display zone, or the city's own UTC
// offset when UseCityTimezone is set and the provider reported one.
func (uc *UseCase) locationFor(observation *ports.Observation) *time.Location {
	cfg := uc.config.GetWeatherConfig()
	if cfg.UseCityTimezone && observation.UTCOffset != nil {
		return time.FixedZone("", int(observation.UTCOffset.Seconds()))
	}
	if loc := cfg.DisplayLocation; loc != nil {
		return loc
	}
	return time.Local
}
