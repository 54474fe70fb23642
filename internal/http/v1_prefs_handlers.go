package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aerosky/aerosky/internal/prefs"
)

// handleV1GetTheme returns the stored theme preference.
// GET /api/v1/prefs/theme
func (s *Server) handleV1GetTheme(c *gin.Context) {
	theme, err := s.deps.Prefs.Theme()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"theme": theme},
	})
}

// handleV1SetTheme stores the theme preference.
// PUT /api/v1/prefs/theme {"theme":"dark"|"light"}
func (s *Server) handleV1SetTheme(c *gin.Context) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	theme, err := prefs.ParseTheme(body.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.deps.Prefs.SetTheme(theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"theme": theme},
	})
}
