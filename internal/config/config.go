package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the dashboard service.
type Config struct {
	Port        int
	BearerToken string

	ForecastURL       string
	GeocodingURL      string
	ReverseGeocodeURL string

	SearchLanguage string
	SearchLimit    int
	DebounceDelay  time.Duration

	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	FallbackLatitude  float64
	FallbackLongitude float64
	FallbackName      string
	DefaultCountry    string

	DefaultTheme string
	ThemeFile    string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:              8080,
		ForecastURL:       "https://api.open-meteo.com/v1/forecast",
		GeocodingURL:      "https://geocoding-api.open-meteo.com/v1/search",
		ReverseGeocodeURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
		SearchLanguage:    "fr",
		SearchLimit:       8,
		DebounceDelay:     300 * time.Millisecond,
		RequestTimeout:    10 * time.Second,
		RateLimitRPS:      2,
		RateLimitBurst:    4,
		FallbackLatitude:  48.8566,
		FallbackLongitude: 2.3522,
		FallbackName:      "Paris",
		DefaultCountry:    "France",
		DefaultTheme:      "light",
		ThemeFile:         "theme.pref",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	if url := os.Getenv("FORECAST_URL"); url != "" {
		cfg.ForecastURL = url
	}
	if url := os.Getenv("GEOCODING_URL"); url != "" {
		cfg.GeocodingURL = url
	}
	if url := os.Getenv("REVERSE_GEOCODE_URL"); url != "" {
		cfg.ReverseGeocodeURL = url
	}

	if lang := os.Getenv("SEARCH_LANGUAGE"); lang != "" {
		cfg.SearchLanguage = lang
	}

	if limitStr := os.Getenv("SEARCH_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			cfg.SearchLimit = limit
		} else {
			return cfg, fmt.Errorf("invalid SEARCH_LIMIT: %s", limitStr)
		}
	}

	if msStr := os.Getenv("DEBOUNCE_MS"); msStr != "" {
		if ms, err := strconv.Atoi(msStr); err == nil && ms > 0 {
			cfg.DebounceDelay = time.Duration(ms) * time.Millisecond
		} else {
			return cfg, fmt.Errorf("invalid DEBOUNCE_MS: %s", msStr)
		}
	}

	if secStr := os.Getenv("REQUEST_TIMEOUT_SECONDS"); secStr != "" {
		if sec, err := strconv.Atoi(secStr); err == nil && sec > 0 {
			cfg.RequestTimeout = time.Duration(sec) * time.Second
		} else {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %s", secStr)
		}
	}

	if rpsStr := os.Getenv("RATE_LIMIT_RPS"); rpsStr != "" {
		if rps, err := strconv.ParseFloat(rpsStr, 64); err == nil && rps > 0 {
			cfg.RateLimitRPS = rps
		} else {
			return cfg, fmt.Errorf("invalid RATE_LIMIT_RPS: %s", rpsStr)
		}
	}

	if burstStr := os.Getenv("RATE_LIMIT_BURST"); burstStr != "" {
		if burst, err := strconv.Atoi(burstStr); err == nil && burst > 0 {
			cfg.RateLimitBurst = burst
		} else {
			return cfg, fmt.Errorf("invalid RATE_LIMIT_BURST: %s", burstStr)
		}
	}

	if latStr := os.Getenv("FALLBACK_LATITUDE"); latStr != "" {
		if lat, err := strconv.ParseFloat(latStr, 64); err == nil && lat >= -90 && lat <= 90 {
			cfg.FallbackLatitude = lat
		} else {
			return cfg, fmt.Errorf("invalid FALLBACK_LATITUDE: %s", latStr)
		}
	}

	if lonStr := os.Getenv("FALLBACK_LONGITUDE"); lonStr != "" {
		if lon, err := strconv.ParseFloat(lonStr, 64); err == nil && lon >= -180 && lon <= 180 {
			cfg.FallbackLongitude = lon
		} else {
			return cfg, fmt.Errorf("invalid FALLBACK_LONGITUDE: %s", lonStr)
		}
	}

	if name := os.Getenv("FALLBACK_NAME"); name != "" {
		cfg.FallbackName = name
	}
	if country := os.Getenv("DEFAULT_COUNTRY"); country != "" {
		cfg.DefaultCountry = country
	}

	if theme := os.Getenv("DEFAULT_THEME"); theme != "" {
		if theme != "light" && theme != "dark" {
			return cfg, fmt.Errorf("invalid DEFAULT_THEME: %s", theme)
		}
		cfg.DefaultTheme = theme
	}
	if file := os.Getenv("THEME_FILE"); file != "" {
		cfg.ThemeFile = file
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
