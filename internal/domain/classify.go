package domain

// Intensity tiers derived from FRP.
const (
	IntensityLow      = "Low"
	IntensityModerate = "Moderate"
	IntensityHigh     = "High"
)

// Fire risk tiers derived from normalized confidence.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ClassifyIntensity maps fire radiative power in megawatts to an intensity
// tier: <30 Low, <100 Moderate, otherwise High.
func ClassifyIntensity(frp float64) string {
	switch {
	case frp < 30:
		return IntensityLow
	case frp < 100:
		return IntensityModerate
	default:
		return IntensityHigh
	}
}

// ClassifyRisk maps a normalized confidence percentage to a risk tier:
// >=70 High, >=50 Medium, else Low. The thresholds are independent of the
// >=40 reliability filter, so a report can contain Low-risk rows in the
// [40,50) band.
func ClassifyRisk(confidencePct float64) string {
	switch {
	case confidencePct >= 70:
		return RiskHigh
	case confidencePct >= 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ClassifyDetections derives intensity and fire risk for every detection.
func ClassifyDetections(dets []Detection) {
	for i := range dets {
		dets[i].Intensity = ClassifyIntensity(dets[i].FRP)
		dets[i].FireRisk = ClassifyRisk(dets[i].ConfidencePercent)
	}
}
