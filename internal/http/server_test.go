package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerosky/aerosky/internal/config"
	"github.com/aerosky/aerosky/internal/geo"
	httpserver "github.com/aerosky/aerosky/internal/http"
	"github.com/aerosky/aerosky/internal/location"
	"github.com/aerosky/aerosky/internal/prefs"
	"github.com/aerosky/aerosky/internal/weather"
)

var paris = geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522}

type fakeLoader struct {
	lastCoord geo.Coordinate
	lastName  string
	report    *weather.Report
	err       error
}

func (f *fakeLoader) Load(_ context.Context, coord geo.Coordinate, name string) (*weather.Report, error) {
	f.lastCoord = coord
	f.lastName = name
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeSearcher struct {
	lastQuery string
	lastLimit int
	results   []geo.PlaceSuggestion
	err       error
}

func (f *fakeSearcher) SearchPlaces(_ context.Context, query string, limit int, _ string) ([]geo.PlaceSuggestion, error) {
	f.lastQuery = query
	f.lastLimit = limit
	return f.results, f.err
}

type fakeReverse struct {
	name string
	err  error
}

func (f fakeReverse) ReverseGeocode(context.Context, geo.Coordinate) (string, error) {
	return f.name, f.err
}

func sampleReport() *weather.Report {
	return &weather.Report{
		Current: weather.CurrentConditions{
			Temperature: 22, Humidity: 58, WindSpeedKmh: 14, WindDirectionDeg: 225,
			WeatherCode: 61, VisibilityKm: 24.14, UVIndex: 6.2, PressureHpa: 1013.2,
		},
		Location: geo.ResolvedLocation{Name: "Paris", Country: "France", Latitude: 48.8566, Longitude: 2.3522},
		Forecast: []weather.ForecastDay{{Date: "2025-06-02", MaxTemp: 20, MinTemp: 12, WeatherCode: 3, PrecipitationMm: 0.4}},
	}
}

type testDeps struct {
	loader   *fakeLoader
	searcher *fakeSearcher
	reverse  fakeReverse
	prefs    prefs.Store
}

func newTestServer(t *testing.T, d testDeps) *httpserver.Server {
	t.Helper()
	if d.loader == nil {
		d.loader = &fakeLoader{report: sampleReport()}
	}
	if d.searcher == nil {
		d.searcher = &fakeSearcher{}
	}
	if d.prefs == nil {
		d.prefs = prefs.NewFileStore(filepath.Join(t.TempDir(), "theme.pref"), prefs.ThemeLight)
	}

	cfg := config.Config{Port: 8080, SearchLimit: 8, SearchLanguage: "fr"}
	quiet := log.New(io.Discard, "", 0)
	resolver := location.NewResolver(location.Unavailable{}, paris, "Paris", quiet)

	return httpserver.New(cfg, httpserver.Deps{
		Loader:   d.loader,
		Searcher: d.searcher,
		Reverse:  d.reverse,
		Resolver: resolver,
		Prefs:    d.prefs,
	})
}

func perform(srv *httpserver.Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testDeps{})
	rec := perform(srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWeatherByCoordinates(t *testing.T) {
	loader := &fakeLoader{report: sampleReport()}
	srv := newTestServer(t, testDeps{loader: loader})

	rec := perform(srv, http.MethodGet, "/api/v1/weather?latitude=45.75&longitude=4.85&name=Lyon", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if loader.lastCoord.Latitude != 45.75 || loader.lastCoord.Longitude != 4.85 || loader.lastName != "Lyon" {
		t.Fatalf("loader called with %v %q", loader.lastCoord, loader.lastName)
	}

	body := decodeBody(t, rec)
	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("missing meta in %v", body)
	}
	if meta["wind_compass"] != "SO" {
		t.Errorf("wind_compass = %v, want SO", meta["wind_compass"])
	}
	if meta["uv_level"] != "Élevé" {
		t.Errorf("uv_level = %v, want Élevé", meta["uv_level"])
	}
	class, ok := meta["classification"].(map[string]any)
	if !ok || class["category"] != "rain" {
		t.Errorf("classification = %v, want rain category for code 61", meta["classification"])
	}
}

func TestWeatherWithoutCoordinatesUsesFallback(t *testing.T) {
	loader := &fakeLoader{report: sampleReport()}
	srv := newTestServer(t, testDeps{loader: loader})

	rec := perform(srv, http.MethodGet, "/api/v1/weather", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if loader.lastCoord != paris || loader.lastName != "Paris" {
		t.Fatalf("expected Paris fallback, loader got %v %q", loader.lastCoord, loader.lastName)
	}
}

func TestWeatherByCityQuery(t *testing.T) {
	loader := &fakeLoader{report: sampleReport()}
	searcher := &fakeSearcher{results: []geo.PlaceSuggestion{{Name: "Lyon", Country: "France", Latitude: 45.7485, Longitude: 4.8467}}}
	srv := newTestServer(t, testDeps{loader: loader, searcher: searcher})

	rec := perform(srv, http.MethodGet, "/api/v1/weather?q=lyon", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if loader.lastCoord.Latitude != 45.7485 || loader.lastName != "Lyon" {
		t.Fatalf("loader called with %v %q", loader.lastCoord, loader.lastName)
	}
}

func TestWeatherCityNotFound(t *testing.T) {
	srv := newTestServer(t, testDeps{searcher: &fakeSearcher{}})

	rec := perform(srv, http.MethodGet, "/api/v1/weather?q=zzzzzz", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Ville non trouvée" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestWeatherValidation(t *testing.T) {
	srv := newTestServer(t, testDeps{})
	targets := []string{
		"/api/v1/weather?latitude=abc&longitude=4.85",
		"/api/v1/weather?latitude=45.75&longitude=xyz",
		"/api/v1/weather?latitude=91&longitude=4.85",
		"/api/v1/weather?latitude=45.75&longitude=181",
	}
	for _, target := range targets {
		if rec := perform(srv, http.MethodGet, target, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestWeatherErrorMapping(t *testing.T) {
	tests := []struct {
		kind       weather.ErrorKind
		message    string
		wantStatus int
	}{
		{weather.KindRateLimited, "Trop de requêtes. Veuillez réessayer dans quelques minutes.", http.StatusTooManyRequests},
		{weather.KindUnavailable, "Service temporairement indisponible. Réessayez plus tard.", http.StatusBadGateway},
		{weather.KindUpstream, "Erreur lors de la récupération des données météo (404)", http.StatusBadGateway},
	}
	for _, tt := range tests {
		loader := &fakeLoader{err: &weather.UserError{Kind: tt.kind, Message: tt.message}}
		srv := newTestServer(t, testDeps{loader: loader})

		rec := perform(srv, http.MethodGet, "/api/v1/weather?latitude=1&longitude=1", nil)
		if rec.Code != tt.wantStatus {
			t.Errorf("kind %d: status = %d, want %d", tt.kind, rec.Code, tt.wantStatus)
		}
		if body := decodeBody(t, rec); body["error"] != tt.message {
			t.Errorf("kind %d: error = %v, want %q", tt.kind, body["error"], tt.message)
		}
	}
}

func TestPlacesSearchShortQueryShortCircuits(t *testing.T) {
	searcher := &fakeSearcher{results: []geo.PlaceSuggestion{{Name: "Lyon"}}}
	srv := newTestServer(t, testDeps{searcher: searcher})

	rec := perform(srv, http.MethodGet, "/api/v1/places/search?q=l", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if searcher.lastQuery != "" {
		t.Fatalf("searcher must not be called for short queries, got %q", searcher.lastQuery)
	}
	body := decodeBody(t, rec)
	if meta := body["meta"].(map[string]any); meta["count"] != float64(0) {
		t.Fatalf("count = %v, want 0", meta["count"])
	}
}

func TestPlacesSearchClampsCount(t *testing.T) {
	searcher := &fakeSearcher{results: []geo.PlaceSuggestion{{Name: "Lyon", Country: "France"}}}
	srv := newTestServer(t, testDeps{searcher: searcher})

	rec := perform(srv, http.MethodGet, "/api/v1/places/search?q=lyon&count=50", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if searcher.lastLimit != 8 {
		t.Fatalf("limit = %d, want clamped to 8", searcher.lastLimit)
	}
	if searcher.lastQuery != "lyon" {
		t.Fatalf("query = %q", searcher.lastQuery)
	}
}

func TestPlacesSearchUpstreamFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("upstream down")}
	srv := newTestServer(t, testDeps{searcher: searcher})

	if rec := perform(srv, http.MethodGet, "/api/v1/places/search?q=lyon", nil); rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestPlacesReverseDegradesToUnknown(t *testing.T) {
	srv := newTestServer(t, testDeps{reverse: fakeReverse{err: errors.New("timeout")}})

	rec := perform(srv, http.MethodGet, "/api/v1/places/reverse?latitude=48.86&longitude=2.35", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite lookup failure", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	if data["name"] != weather.UnknownLocation {
		t.Fatalf("name = %v, want %q", data["name"], weather.UnknownLocation)
	}
}

func TestThemeRoundtripOverHTTP(t *testing.T) {
	srv := newTestServer(t, testDeps{})

	rec := perform(srv, http.MethodGet, "/api/v1/prefs/theme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	if data := decodeBody(t, rec)["data"].(map[string]any); data["theme"] != "light" {
		t.Fatalf("initial theme = %v, want light", data["theme"])
	}

	rec = perform(srv, http.MethodPut, "/api/v1/prefs/theme", strings.NewReader(`{"theme":"dark"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = perform(srv, http.MethodGet, "/api/v1/prefs/theme", nil)
	if data := decodeBody(t, rec)["data"].(map[string]any); data["theme"] != "dark" {
		t.Fatalf("theme after toggle = %v, want dark", data["theme"])
	}
}

func TestThemeRejectsUnknownValue(t *testing.T) {
	srv := newTestServer(t, testDeps{})
	rec := perform(srv, http.MethodPut, "/api/v1/prefs/theme", strings.NewReader(`{"theme":"sepia"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	cfg := config.Config{Port: 8080, SearchLimit: 8, SearchLanguage: "fr", BearerToken: "sesame"}
	quiet := log.New(io.Discard, "", 0)
	srv := httpserver.New(cfg, httpserver.Deps{
		Loader:   &fakeLoader{report: sampleReport()},
		Searcher: &fakeSearcher{},
		Reverse:  fakeReverse{},
		Resolver: location.NewResolver(location.Unavailable{}, paris, "Paris", quiet),
		Prefs:    prefs.NewFileStore(filepath.Join(t.TempDir(), "theme.pref"), prefs.ThemeLight),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prefs/theme", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/prefs/theme", nil)
	req.Header.Set("Authorization", "Bearer sesame")
	rec = httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, want 200", rec.Code)
	}
}
