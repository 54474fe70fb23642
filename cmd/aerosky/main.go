package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/aerosky/aerosky/internal/bigdatacloud"
	"github.com/aerosky/aerosky/internal/config"
	"github.com/aerosky/aerosky/internal/geo"
	httpserver "github.com/aerosky/aerosky/internal/http"
	"github.com/aerosky/aerosky/internal/location"
	"github.com/aerosky/aerosky/internal/openmeteo"
	"github.com/aerosky/aerosky/internal/prefs"
	"github.com/aerosky/aerosky/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	meteo := openmeteo.New(openmeteo.Options{
		ForecastURL: cfg.ForecastURL,
		GeocodeURL:  cfg.GeocodingURL,
		Timeout:     cfg.RequestTimeout,
		RPS:         cfg.RateLimitRPS,
		Burst:       cfg.RateLimitBurst,
	})
	reverse := bigdatacloud.New(cfg.ReverseGeocodeURL, cfg.SearchLanguage, cfg.RequestTimeout)
	loader := weather.NewLoader(meteo, reverse, cfg.DefaultCountry, nil)

	fallback := geo.Coordinate{Latitude: cfg.FallbackLatitude, Longitude: cfg.FallbackLongitude}
	resolver := location.NewResolver(location.Unavailable{}, fallback, cfg.FallbackName, nil)

	store := prefs.NewFileStore(cfg.ThemeFile, prefs.Theme(cfg.DefaultTheme))

	srv := httpserver.New(cfg, httpserver.Deps{
		Loader:   loader,
		Searcher: meteo,
		Reverse:  reverse,
		Resolver: resolver,
		Prefs:    store,
	})
	log.Printf("dashboard API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
