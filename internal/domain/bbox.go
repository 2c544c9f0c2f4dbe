package domain

import (
	"fmt"
	"math"
)

// kmPerDegreeLat approximates one degree of latitude anywhere on Earth.
const kmPerDegreeLat = 111.0

// BoundingBox is a rectangular lat/lon query region in the FIRMS area API
// order: minLon, minLat, maxLon, maxLat.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// ComputeBoundingBox converts a center point and radius in kilometers into
// a query box. Longitude degrees shrink with cos(lat); within 0.1 degrees
// of a pole the cosine is pinned to 0.0001 instead of going to zero. That
// produces an absurdly wide box rather than a correct polar cap, which is
// acceptable for this product domain.
func ComputeBoundingBox(lat, lon, radiusKm float64) BoundingBox {
	deltaLat := radiusKm / kmPerDegreeLat

	cosLat := math.Cos(lat * math.Pi / 180)
	if math.Abs(lat) >= 89.9 {
		cosLat = 0.0001
	}
	deltaLon := radiusKm / (kmPerDegreeLat * cosLat)

	return BoundingBox{
		MinLon: lon - deltaLon,
		MinLat: lat - deltaLat,
		MaxLon: lon + deltaLon,
		MaxLat: lat + deltaLat,
	}
}

// String renders the box as the comma-separated area API path segment.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}
