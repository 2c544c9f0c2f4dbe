package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
)

func sampleResult() pipeline.Result {
	return pipeline.Result{
		Query:       pipeline.Query{Lat: 34.05, Lon: -118.25, RadiusKm: 50, Days: 7},
		FetchedRows: 3,
		Outcome:     pipeline.OutcomeReport,
		Detections: []domain.Detection{
			{
				Satellite: "VIIRS_NOAA20_NRT",
				Latitude:  34.06, Longitude: -118.24,
				AcqDate: "2026-08-21", AcqTime: "13:45",
				FRP: 120, Intensity: domain.IntensityHigh,
				ConfidencePercent: 90, FireRisk: domain.RiskHigh,
				DistanceKm: 1.44,
			},
			{
				Satellite: "MODIS_NRT",
				Latitude:  34.2, Longitude: -118.4,
				AcqDate: "2026-08-21", AcqTime: "14:10",
				FRP: 45, Intensity: domain.IntensityModerate,
				ConfidencePercent: 60, FireRisk: domain.RiskMedium,
				DistanceKm: 22.31,
			},
		},
	}
}

func TestRender_Report(t *testing.T) {
	var buf strings.Builder
	Render(&buf, sampleResult())
	out := buf.String()

	t.Run("summary line", func(t *testing.T) {
		assert.Contains(t, out, "FIRE ALERT")
		assert.Contains(t, out, "Detected 2 reliable fires within 50 km of coordinates (34.05, -118.25) over the last 7 days")
	})

	t.Run("header and divider", func(t *testing.T) {
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.GreaterOrEqual(t, len(lines), 6)

		var headerIdx int
		for i, l := range lines {
			if strings.Contains(l, "satellite") {
				headerIdx = i
				break
			}
		}
		header := lines[headerIdx]
		divider := lines[headerIdx+1]

		for _, col := range []string{"satellite", "latitude", "longitude", "date", "time", "frp", "intensity", "confidence_percent", "fire_risk", "distance_km"} {
			assert.Contains(t, header, col)
		}
		assert.Equal(t, len(header), len(divider))
		assert.Contains(t, divider, "-+-")
		assert.NotContains(t, divider, " ")
	})

	t.Run("rows in final sort order", func(t *testing.T) {
		first := strings.Index(out, "VIIRS_NOAA20_NRT")
		second := strings.Index(out, "MODIS_NRT")
		require.Positive(t, first)
		require.Positive(t, second)
		assert.Less(t, first, second)
	})

	t.Run("cell values", func(t *testing.T) {
		assert.Contains(t, out, "90%")
		assert.Contains(t, out, "13:45")
		assert.Contains(t, out, "1.44")
		assert.Contains(t, out, "22.31")
	})
}

func TestRender_EqualRowWidths(t *testing.T) {
	var buf strings.Builder
	Render(&buf, sampleResult())

	var tableLines []string
	for _, l := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if strings.Contains(l, " | ") || strings.Contains(l, "-+-") {
			tableLines = append(tableLines, l)
		}
	}

	require.GreaterOrEqual(t, len(tableLines), 4)
	width := len(tableLines[0])
	for _, l := range tableLines[1:] {
		assert.Equal(t, width, len(l))
	}
}

func TestRender_NaNCoordinates(t *testing.T) {
	res := sampleResult()
	res.Detections = append(res.Detections, domain.Detection{
		Satellite: "MODIS_NRT",
		Latitude:  math.NaN(), Longitude: math.NaN(),
		AcqTime: "00:00", FRP: 50, Intensity: domain.IntensityModerate,
		ConfidencePercent: 80, FireRisk: domain.RiskHigh,
		DistanceKm: math.NaN(),
	})

	var buf strings.Builder
	Render(&buf, res)

	assert.Contains(t, buf.String(), "NaN")
}

func TestRender_EmptyOutcomes(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		var buf strings.Builder
		Render(&buf, pipeline.Result{Outcome: pipeline.OutcomeNoData})

		assert.Equal(t, "No fires detected (no data returned from satellites).\n", buf.String())
	})

	t.Run("all filtered", func(t *testing.T) {
		var buf strings.Builder
		Render(&buf, pipeline.Result{Outcome: pipeline.OutcomeAllFiltered, FetchedRows: 5})

		assert.Equal(t, "No reliable fires detected within the specified radius.\n", buf.String())
	})
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abc", center("abc", 2))
	assert.Equal(t, "abc", center("abc", 3))
}
