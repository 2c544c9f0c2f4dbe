// Package report renders assembled detection results as human-readable
// text. It is a pure formatting consumer: it never reorders or filters.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
)

// columns is the fixed report column order.
var columns = []string{
	"satellite", "latitude", "longitude", "date", "time",
	"frp", "intensity", "confidence_percent", "fire_risk", "distance_km",
}

// Render writes the outcome of a run: a distinct message for each empty
// outcome, or a summary line plus a centered, aligned table of detections
// in their final sort order.
func Render(w io.Writer, res pipeline.Result) {
	switch res.Outcome {
	case pipeline.OutcomeNoData:
		fmt.Fprintln(w, "No fires detected (no data returned from satellites).")
		return
	case pipeline.OutcomeAllFiltered:
		fmt.Fprintln(w, "No reliable fires detected within the specified radius.")
		return
	}

	q := res.Query
	fmt.Fprintln(w, "\nFIRE ALERT")
	fmt.Fprintf(w, "Detected %d reliable fires within %g km of coordinates (%g, %g) over the last %d days\n\n",
		len(res.Detections), q.RadiusKm, q.Lat, q.Lon, q.Days)

	rows := make([][]string, 0, len(res.Detections))
	for _, d := range res.Detections {
		rows = append(rows, cells(d))
	}

	widths := columnWidths(rows)

	headerCells := make([]string, len(columns))
	dividerCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = center(col, widths[i])
		dividerCells[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(headerCells, " | "))
	fmt.Fprintln(w, strings.Join(dividerCells, "-+-"))

	for _, row := range rows {
		for i := range row {
			row[i] = center(row[i], widths[i])
		}
		fmt.Fprintln(w, strings.Join(row, " | "))
	}
}

// cells stringifies one detection in column order.
func cells(d domain.Detection) []string {
	return []string{
		d.Satellite,
		formatFloat(d.Latitude),
		formatFloat(d.Longitude),
		d.AcqDate,
		d.AcqTime,
		formatFloat(d.FRP),
		d.Intensity,
		d.ConfidenceDisplay(),
		d.FireRisk,
		formatDistance(d.DistanceKm),
	}
}

// columnWidths returns per-column widths: the longer of the header and the
// longest cell.
func columnWidths(rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// center pads a value to width, biasing the extra space to the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatDistance(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
