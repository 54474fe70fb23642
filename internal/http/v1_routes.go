package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/weather, /api/v1/places, /api/v1/prefs
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Weather endpoints - current conditions plus the 6-day forecast
	weather := v1.Group("/weather")
	{
		weather.GET("", s.handleV1Weather)
	}

	// Places endpoints - geocoding search and reverse lookup
	places := v1.Group("/places")
	{
		places.GET("/search", s.handleV1PlacesSearch)
		places.GET("/reverse", s.handleV1PlacesReverse)
	}

	// Prefs endpoints - the theme preference
	prefs := v1.Group("/prefs")
	{
		prefs.GET("/theme", s.handleV1GetTheme)
		prefs.PUT("/theme", s.handleV1SetTheme)
	}
}
