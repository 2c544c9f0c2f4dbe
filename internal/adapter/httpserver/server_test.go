package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
)

type fakeChecker struct {
	res    pipeline.Result
	err    error
	gotQ   pipeline.Query
	called bool
	ready  bool
}

func (f *fakeChecker) Run(_ context.Context, q pipeline.Query) (pipeline.Result, error) {
	f.called = true
	f.gotQ = q
	return f.res, f.err
}

func (f *fakeChecker) CheckReadiness(context.Context) error {
	if !f.ready {
		return errors.New("not ready")
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(f *fakeChecker) *Server {
	return NewServer(":0", f, f, testLogger())
}

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleFires(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		f := &fakeChecker{res: pipeline.Result{
			Query:       pipeline.Query{Lat: 34.05, Lon: -118.25, RadiusKm: 50, Days: 7},
			FetchedRows: 2,
			Outcome:     pipeline.OutcomeReport,
			Detections: []domain.Detection{{
				ID:        "viirs-abc",
				Satellite: "VIIRS_NOAA20_NRT",
				Latitude:  34.06, Longitude: -118.24,
				FRP: 120, Intensity: domain.IntensityHigh,
				ConfidencePercent: 90, FireRisk: domain.RiskHigh,
				AcqDate: "2026-08-21", AcqTime: "13:45",
				DistanceKm: 1.44,
			}},
		}}
		s := newTestServer(f)

		rec := doRequest(t, s, "/api/v1/fires?lat=34.05&lon=-118.25&radius_km=50&days=7")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, pipeline.Query{Lat: 34.05, Lon: -118.25, RadiusKm: 50, Days: 7}, f.gotQ)

		var resp struct {
			Outcome     string `json:"outcome"`
			Count       int    `json:"count"`
			FetchedRows int    `json:"fetched_rows"`
			Detections  []struct {
				ID         string   `json:"id"`
				Satellite  string   `json:"satellite"`
				Latitude   *float64 `json:"latitude"`
				Confidence string   `json:"confidence"`
				FireRisk   string   `json:"fire_risk"`
				DistanceKm *float64 `json:"distance_km"`
			} `json:"detections"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "report", resp.Outcome)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, 2, resp.FetchedRows)
		require.Len(t, resp.Detections, 1)
		assert.Equal(t, "viirs-abc", resp.Detections[0].ID)
		assert.Equal(t, "90%", resp.Detections[0].Confidence)
		require.NotNil(t, resp.Detections[0].Latitude)
		assert.Equal(t, 34.06, *resp.Detections[0].Latitude)
	})

	t.Run("defaults for radius and days", func(t *testing.T) {
		f := &fakeChecker{res: pipeline.Result{Outcome: pipeline.OutcomeNoData}}
		s := newTestServer(f)

		rec := doRequest(t, s, "/api/v1/fires?lat=34.05&lon=-118.25")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 200.0, f.gotQ.RadiusKm)
		assert.Equal(t, 7, f.gotQ.Days)
	})

	t.Run("NaN coordinates serialize as null", func(t *testing.T) {
		f := &fakeChecker{res: pipeline.Result{
			Outcome: pipeline.OutcomeReport,
			Detections: []domain.Detection{{
				Satellite: "MODIS_NRT",
				Latitude:  math.NaN(), Longitude: math.NaN(),
				ConfidencePercent: 80, DistanceKm: math.NaN(),
			}},
		}}
		s := newTestServer(f)

		rec := doRequest(t, s, "/api/v1/fires?lat=0&lon=0")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Detections []struct {
				Latitude   *float64 `json:"latitude"`
				DistanceKm *float64 `json:"distance_km"`
			} `json:"detections"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Detections, 1)
		assert.Nil(t, resp.Detections[0].Latitude)
		assert.Nil(t, resp.Detections[0].DistanceKm)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			target string
		}{
			{"missing lat", "/api/v1/fires?lon=-118.25"},
			{"missing lon", "/api/v1/fires?lat=34.05"},
			{"non-numeric lat", "/api/v1/fires?lat=abc&lon=-118.25"},
			{"lat out of range", "/api/v1/fires?lat=91&lon=0"},
			{"lon out of range", "/api/v1/fires?lat=0&lon=181"},
			{"negative radius", "/api/v1/fires?lat=0&lon=0&radius_km=-5"},
			{"non-numeric radius", "/api/v1/fires?lat=0&lon=0&radius_km=wide"},
			{"zero days", "/api/v1/fires?lat=0&lon=0&days=0"},
			{"fractional days", "/api/v1/fires?lat=0&lon=0&days=1.5"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				f := &fakeChecker{}
				s := newTestServer(f)

				rec := doRequest(t, s, tc.target)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.False(t, f.called, "pipeline must not run on invalid input")
			})
		}
	})

	t.Run("run failure is a 500", func(t *testing.T) {
		f := &fakeChecker{err: context.Canceled}
		s := newTestServer(f)

		rec := doRequest(t, s, "/api/v1/fires?lat=0&lon=0")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthAndReadiness(t *testing.T) {
	t.Run("healthz always ok", func(t *testing.T) {
		s := newTestServer(&fakeChecker{})
		rec := doRequest(t, s, "/healthz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("readyz reflects pipeline readiness", func(t *testing.T) {
		f := &fakeChecker{}
		s := newTestServer(f)

		rec := doRequest(t, s, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		f.ready = true
		rec = doRequest(t, s, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
