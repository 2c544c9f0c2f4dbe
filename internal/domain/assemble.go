package domain

import (
	"math"
	"sort"
)

// ReliableConfidencePct is the minimum normalized confidence for a
// detection to appear in a report.
const ReliableConfidencePct = 40.0

// AssembleReport filters out low-confidence detections and sorts the
// survivors ascending by distance. The sort is stable: ties keep their
// arrival order, and NaN distances go last.
func AssembleReport(dets []Detection) []Detection {
	out := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if d.ConfidencePercent >= ReliableConfidencePct {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return distanceLess(out[i].DistanceKm, out[j].DistanceKm)
	})
	return out
}

// distanceLess orders defined distances ascending and pushes NaN after
// every defined value. Go's sort makes no promise about NaN ordering on
// its own, so the policy is explicit here.
func distanceLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
