package domain

import (
	"context"
	"time"
)

// RawRecord is one row of a sensor's CSV response, keyed by header column
// name. Column sets differ between sensors, so rows stay schemaless until
// normalization; a missing key means the sensor does not report that column.
type RawRecord struct {
	Satellite string
	Fields    map[string]string
}

// FeedClient fetches raw detection rows for one sensor over a bounding box
// and lookback window. A failure affects only that sensor's contribution.
type FeedClient interface {
	Fetch(ctx context.Context, satellite string, box BoundingBox, days int) ([]RawRecord, error)
}

// Detection is one satellite fire observation after normalization.
// Latitude, Longitude and DistanceKm are NaN when the feed omitted the
// coordinate columns; FRP and ConfidencePercent are always defined.
type Detection struct {
	ID        string
	Satellite string
	Latitude  float64
	Longitude float64
	FRP       float64

	// Confidence keeps the raw sensor field as a tagged variant;
	// ConfidencePercent is its resolved value and drives all filtering
	// and risk classification.
	Confidence        Confidence
	ConfidencePercent float64

	AcqDate string // raw feed date string, e.g. "2026-08-21"
	AcqTime string // "HH:MM", "00:00" when the feed omitted the time

	DistanceKm float64
	Intensity  string // Low, Moderate, High — from FRP
	FireRisk   string // Low, Medium, High — from confidence

	ProcessedAt time.Time
}
