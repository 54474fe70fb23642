package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/aerosky/aerosky/internal/geo"
	"github.com/aerosky/aerosky/internal/openmeteo"
)

// UnknownLocation is substituted when reverse geocoding fails or yields
// nothing. That secondary failure never aborts a weather result.
const UnknownLocation = "Localisation inconnue"

// ErrorKind classifies a failed load for the caller's retry affordance.
type ErrorKind int

const (
	// KindRateLimited means the upstream throttled us (HTTP 429).
	KindRateLimited ErrorKind = iota
	// KindUnavailable means the upstream failed server-side (HTTP 5xx).
	KindUnavailable
	// KindUpstream covers any other non-success status.
	KindUpstream
	// KindNetwork covers transport-level failures.
	KindNetwork
)

// UserError carries the single user-facing message for a failed load.
// A load produces either a Report or a UserError, never both.
type UserError struct {
	Kind    ErrorKind
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// ForecastProvider is the weather endpoint the loader consumes.
type ForecastProvider interface {
	Forecast(ctx context.Context, coord geo.Coordinate) (openmeteo.ForecastResponse, error)
}

// ReverseGeocoder resolves a position to a human-readable place name.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coord geo.Coordinate) (string, error)
}

// Loader fetches and normalizes weather reports.
type Loader struct {
	provider ForecastProvider
	reverse  ReverseGeocoder
	country  string
	logger   *log.Logger
}

// NewLoader wires a loader. country labels every resolved location; logger
// may be nil for the default logger.
func NewLoader(provider ForecastProvider, reverse ReverseGeocoder, country string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{provider: provider, reverse: reverse, country: country, logger: logger}
}

// Load fetches current conditions and the forecast for a position. When
// locationName is empty a reverse lookup supplies it, falling back to
// UnknownLocation. The returned error, if any, is always a *UserError.
func (l *Loader) Load(ctx context.Context, coord geo.Coordinate, locationName string) (*Report, error) {
	payload, err := l.provider.Forecast(ctx, coord)
	if err != nil {
		return nil, classify(err)
	}

	name := locationName
	if name == "" {
		name = l.lookupName(ctx, coord)
	}

	report := &Report{
		Current: CurrentConditions{
			Temperature:      int(math.Round(payload.Current.Temperature)),
			Humidity:         payload.Current.Humidity,
			WindSpeedKmh:     int(math.Round(payload.Current.WindSpeed)),
			WindDirectionDeg: payload.Current.WindDirection,
			WeatherCode:      payload.Current.WeatherCode,
			VisibilityKm:     payload.Current.Visibility / 1000,
			UVIndex:          payload.Current.UVIndex,
			PressureHpa:      payload.Current.SurfacePressure,
		},
		Location: geo.ResolvedLocation{
			Name:      name,
			Country:   l.country,
			Latitude:  coord.Latitude,
			Longitude: coord.Longitude,
		},
		Forecast: normalizeForecast(payload),
	}
	return report, nil
}

// lookupName reverse geocodes the position, degrading to UnknownLocation on
// any failure.
func (l *Loader) lookupName(ctx context.Context, coord geo.Coordinate) string {
	name, err := l.reverse.ReverseGeocode(ctx, coord)
	if err != nil {
		l.logger.Printf("reverse geocode failed for %s: %v", coord, err)
		return UnknownLocation
	}
	if name == "" {
		return UnknownLocation
	}
	return name
}

// normalizeForecast keeps the six days strictly after today, in order. The
// daily block is parallel arrays; entries missing from any array are skipped.
func normalizeForecast(payload openmeteo.ForecastResponse) []ForecastDay {
	daily := payload.Daily
	days := make([]ForecastDay, 0, 6)
	for i := 1; i <= 6 && i < len(daily.Time); i++ {
		if i >= len(daily.WeatherCode) || i >= len(daily.TempMax) ||
			i >= len(daily.TempMin) || i >= len(daily.Precipitation) {
			break
		}
		days = append(days, ForecastDay{
			Date:            daily.Time[i],
			MaxTemp:         int(math.Round(daily.TempMax[i])),
			MinTemp:         int(math.Round(daily.TempMin[i])),
			WeatherCode:     daily.WeatherCode[i],
			PrecipitationMm: daily.Precipitation[i],
		})
	}
	return days
}

// classify maps a provider error to the single user-facing message. No
// automatic retry; the message drives the caller's retry affordance.
func classify(err error) *UserError {
	var status *openmeteo.StatusError
	if errors.As(err, &status) {
		switch {
		case status.Code == 429:
			return &UserError{
				Kind:    KindRateLimited,
				Message: "Trop de requêtes. Veuillez réessayer dans quelques minutes.",
			}
		case status.Code >= 500:
			return &UserError{
				Kind:    KindUnavailable,
				Message: "Service temporairement indisponible. Réessayez plus tard.",
			}
		default:
			return &UserError{
				Kind:    KindUpstream,
				Message: fmt.Sprintf("Erreur lors de la récupération des données météo (%d)", status.Code),
			}
		}
	}
	return &UserError{
		Kind:    KindNetwork,
		Message: "Erreur lors de la récupération des données météo",
	}
}
