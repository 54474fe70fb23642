package http

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/aerosky/aerosky/internal/geo"
	"github.com/aerosky/aerosky/internal/weather"
)

// handleV1PlacesSearch returns place candidates for a free-text query.
// GET /api/v1/places/search?q=..&count=..
// Queries under two characters short-circuit to an empty list; the browser
// engine never fetches for those either.
func (s *Server) handleV1PlacesSearch(c *gin.Context) {
	query := c.Query("q")
	if utf8.RuneCountInString(query) < 2 {
		c.JSON(http.StatusOK, gin.H{
			"data": []geo.PlaceSuggestion{},
			"meta": gin.H{"count": 0},
		})
		return
	}

	count := s.cfg.SearchLimit
	if countStr := c.Query("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
			return
		}
		if parsed < count {
			count = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	suggestions, err := s.deps.Searcher.SearchPlaces(ctx, query, count, s.cfg.SearchLanguage)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": suggestions,
		"meta": gin.H{"count": len(suggestions)},
	})
}

// handleV1PlacesReverse resolves coordinates to a best-effort locality name.
// GET /api/v1/places/reverse?latitude=..&longitude=..
// Lookup failures degrade to the unknown-location label, never an error.
func (s *Server) handleV1PlacesReverse(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}

	coord := geo.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	name, err := s.deps.Reverse.ReverseGeocode(ctx, coord)
	if err != nil || name == "" {
		name = weather.UnknownLocation
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"name": name},
	})
}
