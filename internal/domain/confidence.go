package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type confidenceKind int

const (
	confidenceAbsent confidenceKind = iota
	confidenceCategorical
	confidenceNumeric
)

// confidenceLabels maps the VIIRS categorical confidence labels to their
// fixed percentage equivalents.
var confidenceLabels = map[string]float64{
	"low":     30,
	"nominal": 60,
	"high":    90,
}

// Confidence is the sensor-reported detection reliability: a categorical
// label (VIIRS), a numeric 0-100 value (MODIS), or absent. The variant is
// fixed at parse time; Percent resolves it with a single precedence order
// so the two encodings never interleave.
type Confidence struct {
	kind  confidenceKind
	label string
	value float64
}

// ParseConfidence classifies a raw confidence field. Labels are matched
// case-insensitively after trimming whitespace; a value that is neither a
// known label nor a number is treated as absent.
func ParseConfidence(raw string, present bool) Confidence {
	if !present {
		return Confidence{kind: confidenceAbsent}
	}
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := confidenceLabels[trimmed]; ok {
		return Confidence{kind: confidenceCategorical, label: trimmed}
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return Confidence{kind: confidenceNumeric, value: v}
	}
	return Confidence{kind: confidenceAbsent}
}

// Percent resolves the variant to a percentage in [0,100]. Precedence:
// label mapping, then numeric value clamped to [0,100], then 0.
func (c Confidence) Percent() float64 {
	switch c.kind {
	case confidenceCategorical:
		return confidenceLabels[c.label]
	case confidenceNumeric:
		return clampPercent(c.value)
	default:
		return 0
	}
}

// FormatPercent renders a resolved confidence for display, e.g. "60%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
