package geo

import "fmt"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the pair lies inside the usual WGS84 ranges.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// PlaceSuggestion is one candidate returned by the geocoding search.
// Immutable once received.
type PlaceSuggestion struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AdminRegion string  `json:"admin1,omitempty"`
}

// DisplayName formats the suggestion the way it is shown once picked:
// "name, admin1, country" when the administrative region is known,
// "name, country" otherwise.
func (p PlaceSuggestion) DisplayName() string {
	if p.AdminRegion != "" {
		return fmt.Sprintf("%s, %s, %s", p.Name, p.AdminRegion, p.Country)
	}
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// Coordinate returns the suggestion's position.
func (p PlaceSuggestion) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

// ResolvedLocation is the place a weather report is attached to. The name may
// start out empty when the position came from device geolocation; the loader
// fills it in via reverse lookup.
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
