package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aerosky/aerosky/internal/geo"
	"github.com/aerosky/aerosky/internal/weather"
)

// handleV1Weather returns the normalized report for a position.
// GET /api/v1/weather?latitude=..&longitude=..&name=..
// GET /api/v1/weather?q=..
// A q parameter resolves a free-text city first; without q or coordinates
// the location resolver supplies the initial (or fallback) position.
func (s *Server) handleV1Weather(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	coord, name, ok := s.requestPosition(ctx, c)
	if !ok {
		return
	}

	report, err := s.deps.Loader.Load(ctx, coord, name)
	if err != nil {
		var userErr *weather.UserError
		if errors.As(err, &userErr) {
			c.JSON(statusForKind(userErr.Kind), gin.H{"error": userErr.Message})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	class := weather.Classify(report.Current.WeatherCode)
	c.JSON(http.StatusOK, gin.H{
		"data": report,
		"meta": gin.H{
			"classification": class,
			"wind_compass":   weather.CompassPoint(report.Current.WindDirectionDeg),
			"uv_level":       weather.UVLevel(report.Current.UVIndex),
		},
	})
}

// requestPosition extracts the queried position, or resolves one when the
// request carries no coordinates. A false return means the response was
// already written.
func (s *Server) requestPosition(ctx context.Context, c *gin.Context) (geo.Coordinate, string, bool) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	name := c.Query("name")

	if query := c.Query("q"); query != "" {
		matches, err := s.deps.Searcher.SearchPlaces(ctx, query, 1, s.cfg.SearchLanguage)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la recherche de la ville"})
			return geo.Coordinate{}, "", false
		}
		if len(matches) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ville non trouvée"})
			return geo.Coordinate{}, "", false
		}
		return matches[0].Coordinate(), matches[0].Name, true
	}

	if latStr == "" && lonStr == "" {
		coord, resolvedName := s.deps.Resolver.Resolve(ctx)
		if name == "" {
			name = resolvedName
		}
		return coord, name, true
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return geo.Coordinate{}, "", false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return geo.Coordinate{}, "", false
	}

	coord := geo.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return geo.Coordinate{}, "", false
	}
	return coord, name, true
}

// statusForKind maps a load failure onto the status returned to the browser.
func statusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindRateLimited:
		return http.StatusTooManyRequests
	case weather.KindUnavailable, weather.KindUpstream, weather.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
