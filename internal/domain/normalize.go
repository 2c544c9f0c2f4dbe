package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeDetection converts a raw feed row into a Detection with every
// field defined. Missing coordinates become NaN; missing or unparseable FRP
// becomes 0; confidence is resolved per the precedence in Confidence.Percent.
func NormalizeDetection(raw RawRecord) Detection {
	lat := parseFloatOrNaN(raw.Fields["latitude"])
	lon := parseFloatOrNaN(raw.Fields["longitude"])
	frp := parseFloatOrZero(raw.Fields["frp"])

	confRaw, confPresent := raw.Fields["confidence"]
	conf := ParseConfidence(confRaw, confPresent)

	acqDate := strings.TrimSpace(raw.Fields["acq_date"])
	acqTime := formatAcqTime(raw.Fields["acq_time"])

	return Detection{
		ID:                generateID(raw.Satellite, lat, lon, acqDate, acqTime),
		Satellite:         raw.Satellite,
		Latitude:          lat,
		Longitude:         lon,
		FRP:               frp,
		Confidence:        conf,
		ConfidencePercent: conf.Percent(),
		AcqDate:           acqDate,
		AcqTime:           acqTime,
		DistanceKm:        math.NaN(),
		ProcessedAt:       clock.Now(),
	}
}

// NormalizeAll normalizes a batch of raw rows, preserving arrival order.
func NormalizeAll(raws []RawRecord) []Detection {
	dets := make([]Detection, 0, len(raws))
	for _, raw := range raws {
		dets = append(dets, NormalizeDetection(raw))
	}
	return dets
}

// ConfidenceDisplay renders the normalized confidence for presentation,
// e.g. "60%". The numeric ConfidencePercent drives all downstream logic.
func (d Detection) ConfidenceDisplay() string {
	return FormatPercent(d.ConfidencePercent)
}

// parseFloatOrNaN parses a string as float64, returning NaN when the value
// is missing or unparseable. Used for fields where absence must propagate
// as undefined rather than zero.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
// An unparseable FRP reading means "no power reported", not unknown.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatAcqTime renders an integer HHMM acquisition time as "HH:MM".
// Missing or unparseable input renders as "00:00". Minutes are not
// validated: 1297 renders as "12:97", matching the upstream feed.
func formatAcqTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "00:00"
	}
	t, err := strconv.Atoi(s)
	if err != nil || t < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", t/100, t%100)
}

// generateID produces a deterministic ID from the detection's key fields,
// prefixed with the sensor family ("modis-", "viirs-"). Reprocessing the
// same feed row yields the same ID.
func generateID(satellite string, lat, lon float64, date, timeStr string) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%s|%s", satellite, lat, lon, date, timeStr)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])

	family := strings.ToLower(satellite)
	if i := strings.IndexByte(family, '_'); i > 0 {
		family = family[:i]
	}
	if family == "" {
		return short
	}
	return family + "-" + short
}
