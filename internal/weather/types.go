package weather

import "github.com/aerosky/aerosky/internal/geo"

// CurrentConditions is the normalized "right now" block of a report.
// Temperature and wind speed are rounded to whole units; visibility is in
// kilometers.
type CurrentConditions struct {
	Temperature      int     `json:"temperature"`
	Humidity         float64 `json:"humidity"`
	WindSpeedKmh     int     `json:"wind_speed_kmh"`
	WindDirectionDeg float64 `json:"wind_direction_deg"`
	WeatherCode      int     `json:"weather_code"`
	VisibilityKm     float64 `json:"visibility_km"`
	UVIndex          float64 `json:"uv_index"`
	PressureHpa      float64 `json:"pressure_hpa"`
}

// ForecastDay is one normalized daily entry. Precipitation stays fractional.
type ForecastDay struct {
	Date            string  `json:"date"`
	MaxTemp         int     `json:"max_temp"`
	MinTemp         int     `json:"min_temp"`
	WeatherCode     int     `json:"weather_code"`
	PrecipitationMm float64 `json:"precipitation_mm"`
}

// Report is the consolidated result of one successful load: current
// conditions, the resolved location, and the six days after today in
// chronological order. Rebuilt wholesale on every fetch, never merged.
type Report struct {
	Current  CurrentConditions    `json:"current"`
	Location geo.ResolvedLocation `json:"location"`
	Forecast []ForecastDay        `json:"forecast"`
}
