// Package firms implements the detection feed client against the NASA
// FIRMS area API, which serves active-fire detections as CSV per sensor.
package firms

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
)

// Client implements domain.FeedClient using the FIRMS area CSV API.
type Client struct {
	mapKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a FIRMS feed client. The timeout bounds each request;
// there is no retry — a failed fetch drops that sensor's contribution.
func NewClient(mapKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		mapKey: mapKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Fetch retrieves the raw CSV detections for one satellite over the given
// bounding box and lookback window.
func (c *Client) Fetch(ctx context.Context, satellite string, box domain.BoundingBox, days int) ([]domain.RawRecord, error) {
	fullURL := fmt.Sprintf("%s/%s/%s/%s/%d",
		c.baseURL,
		url.PathEscape(c.mapKey),
		url.PathEscape(satellite),
		box,
		days,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s feed request: %w", satellite, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("firms API error: status %d: %s", resp.StatusCode, body)
	}

	records, err := parseCSV(resp.Body, satellite)
	if err != nil {
		return nil, fmt.Errorf("parse %s response: %w", satellite, err)
	}
	return records, nil
}

// parseCSV converts a FIRMS CSV body into header-keyed records tagged with
// the originating satellite. An empty body yields no records and no error.
func parseCSV(r io.Reader, satellite string) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []domain.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		out = append(out, domain.RawRecord{Satellite: satellite, Fields: fields})
	}
	return out, nil
}
