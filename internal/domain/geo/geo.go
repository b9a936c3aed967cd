// Package geo holds great-circle helpers for lon/lat points.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points
// specified by latitude and longitude in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DistanceTo returns the distance in meters from (lat, lon) to g. Points use
// their own coordinate; other geometries use the center of their bounds.
// ok is false for a nil or empty geometry.
func DistanceTo(g geom.T, lat, lon float64) (meters float64, ok bool) {
	if g == nil || len(g.FlatCoords()) == 0 {
		return 0, false
	}
	var x, y float64
	if p, isPoint := g.(*geom.Point); isPoint {
		x, y = p.X(), p.Y()
	} else {
		b := g.Bounds()
		x = (b.Min(0) + b.Max(0)) / 2
		y = (b.Min(1) + b.Max(1)) / 2
	}
	return Haversine(lat, lon, y, x), true
}
