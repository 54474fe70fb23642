package weather

import "math"

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SO", "O", "NO"}

// CompassPoint maps a wind direction in degrees onto the 8-wind rose.
func CompassPoint(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}

// UVLevel labels a UV index with the usual exposure bands.
func UVLevel(index float64) string {
	switch {
	case index <= 2:
		return "Faible"
	case index <= 5:
		return "Modéré"
	case index <= 7:
		return "Élevé"
	case index <= 10:
		return "Très élevé"
	default:
		return "Extrême"
	}
}
