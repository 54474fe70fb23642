package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aerosky/aerosky/internal/bigdatacloud"
	"github.com/aerosky/aerosky/internal/config"
	"github.com/aerosky/aerosky/internal/geo"
	"github.com/aerosky/aerosky/internal/location"
	"github.com/aerosky/aerosky/internal/openmeteo"
	"github.com/aerosky/aerosky/internal/search"
	"github.com/aerosky/aerosky/internal/weather"
)

// skycli is a terminal front end for the dashboard: it resolves an initial
// position, then runs the search engine over stdin. Type a city fragment to
// see suggestions, a number to pick one, or a full name to search directly.
func main() {
	if err := run(); err != nil {
		log.Fatalf("skycli failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	meteo := openmeteo.New(openmeteo.Options{
		ForecastURL: cfg.ForecastURL,
		GeocodeURL:  cfg.GeocodingURL,
		Timeout:     cfg.RequestTimeout,
		RPS:         cfg.RateLimitRPS,
		Burst:       cfg.RateLimitBurst,
	})
	reverse := bigdatacloud.New(cfg.ReverseGeocodeURL, cfg.SearchLanguage, cfg.RequestTimeout)
	loader := weather.NewLoader(meteo, reverse, cfg.DefaultCountry, nil)

	sink := func(ctx context.Context, commit search.Commit) error {
		switch c := commit.(type) {
		case search.ByPlace:
			return showWeather(ctx, loader, geo.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}, c.CityName)
		case search.ByText:
			matches, err := meteo.SearchPlaces(ctx, c.Text, 1, cfg.SearchLanguage)
			if err != nil {
				return fmt.Errorf("recherche de la ville: %w", err)
			}
			if len(matches) == 0 {
				return errors.New("Ville non trouvée")
			}
			return showWeather(ctx, loader, matches[0].Coordinate(), matches[0].Name)
		}
		return nil
	}

	engine := search.NewEngine(search.Options{
		Suggester: meteo,
		Sink:      sink,
		Debounce:  cfg.DebounceDelay,
		Limit:     cfg.SearchLimit,
		Language:  cfg.SearchLanguage,
	})

	fallback := geo.Coordinate{Latitude: cfg.FallbackLatitude, Longitude: cfg.FallbackLongitude}
	resolver := location.NewResolver(location.Unavailable{}, fallback, cfg.FallbackName, nil)

	coord, name := resolver.Resolve(ctx)
	if err := showWeather(ctx, loader, coord, name); err != nil {
		fmt.Println(err)
	}

	return repl(ctx, engine, cfg.DebounceDelay)
}

func repl(ctx context.Context, engine *search.Engine, debounce time.Duration) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("recherche> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return nil
		}

		if idx, err := strconv.Atoi(line); err == nil {
			if err := engine.Pick(ctx, idx-1); err != nil {
				fmt.Println(err)
			}
			continue
		}

		engine.Input(line)
		waitForSuggestions(engine, debounce)

		sess := engine.Session()
		if !sess.Open {
			// No candidates: fall back to a direct text search.
			if err := engine.Submit(ctx); err != nil {
				fmt.Println(err)
			}
			continue
		}
		for i, s := range sess.Suggestions {
			fmt.Printf("  %d. %s\n", i+1, s.DisplayName())
		}
		fmt.Println("  (numéro pour choisir, ou continuez à taper)")
	}
}

// waitForSuggestions lets the debounce fire and the fetch settle.
func waitForSuggestions(engine *search.Engine, debounce time.Duration) {
	time.Sleep(debounce + 50*time.Millisecond)
	for i := 0; i < 100; i++ {
		if !engine.Session().FetchingSuggestions {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func showWeather(ctx context.Context, loader *weather.Loader, coord geo.Coordinate, name string) error {
	report, err := loader.Load(ctx, coord, name)
	if err != nil {
		return err
	}

	cur := report.Current
	class := weather.Classify(cur.WeatherCode)
	fmt.Printf("\n%s, %s — %s\n", report.Location.Name, report.Location.Country, class.Description)
	fmt.Printf("  %d°C  vent %d km/h %s  humidité %.0f%%\n",
		cur.Temperature, cur.WindSpeedKmh, weather.CompassPoint(cur.WindDirectionDeg), cur.Humidity)
	fmt.Printf("  visibilité %.1f km  pression %.0f hPa  UV %.1f (%s)\n",
		cur.VisibilityKm, cur.PressureHpa, cur.UVIndex, weather.UVLevel(cur.UVIndex))

	for _, day := range report.Forecast {
		fmt.Printf("  %s  %3d° / %3d°  %s  %.1f mm\n",
			day.Date, day.MinTemp, day.MaxTemp, weather.Description(day.WeatherCode), day.PrecipitationMm)
	}
	fmt.Println()
	return nil
}
