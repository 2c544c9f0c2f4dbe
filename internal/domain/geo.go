package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is Earth's mean radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance in kilometers
// between a reference point and a detection coordinate. NaN when either
// coordinate is undefined.
func DistanceKm(ref s2.LatLng, lat, lon float64) float64 {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return math.NaN()
	}
	return ref.Distance(s2.LatLngFromDegrees(lat, lon)).Radians() * EarthRadiusKm
}

// ScoreDistances attaches the distance from the reference point to every
// detection in one pass. Detections with missing coordinates get NaN, which
// the report assembler sorts after all defined distances.
func ScoreDistances(lat0, lon0 float64, dets []Detection) {
	ref := s2.LatLngFromDegrees(lat0, lon0)
	for i := range dets {
		dets[i].DistanceKm = DistanceKm(ref, dets[i].Latitude, dets[i].Longitude)
	}
}
