package geo

import (
	"math"

	"github.com/fitlyapps/fitly-api/internal/models"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinate pairs
// in kilometers, using the haversine formula. Symmetric, zero for identical
// points; NaN inputs propagate.
func DistanceKm(a, b models.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	root := sinLat*sinLat + sinLon*sinLon*math.Cos(lat1)*math.Cos(lat2)
	arc := 2 * math.Atan2(math.Sqrt(root), math.Sqrt(1-root))

	return earthRadiusKm * arc
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
