// Package httpserver exposes the detection pipeline over HTTP along with
// health, readiness, and metrics endpoints.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
)

// FireChecker runs the detection pipeline for one query.
type FireChecker interface {
	Run(ctx context.Context, q pipeline.Query) (pipeline.Result, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the fires query API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	checker    FireChecker
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api/v1/fires, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, checker FireChecker, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second, // a run may wait on several 30s sensor fetches
			IdleTimeout:  60 * time.Second,
		},
		checker: checker,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/v1/fires", s.handleFires)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleFires(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.checker.Run(r.Context(), q)
	if err != nil {
		s.logger.Error("run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "run failed"})
		return
	}

	writeJSON(w, http.StatusOK, toResponse(res))
}

// parseQuery validates the fires query parameters. lat and lon are
// required; radius_km defaults to 200 and days to 7, matching the CLI.
func parseQuery(r *http.Request) (pipeline.Query, error) {
	vals := r.URL.Query()

	lat, err := requiredFloat(vals.Get("lat"), "lat")
	if err != nil {
		return pipeline.Query{}, err
	}
	lon, err := requiredFloat(vals.Get("lon"), "lon")
	if err != nil {
		return pipeline.Query{}, err
	}

	radius := 200.0
	if s := vals.Get("radius_km"); s != "" {
		radius, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return pipeline.Query{}, fmt.Errorf("radius_km must be a number")
		}
	}

	days := 7
	if s := vals.Get("days"); s != "" {
		days, err = strconv.Atoi(s)
		if err != nil {
			return pipeline.Query{}, fmt.Errorf("days must be an integer")
		}
	}

	switch {
	case lat < -90 || lat > 90:
		return pipeline.Query{}, fmt.Errorf("lat must be in [-90,90]")
	case lon < -180 || lon > 180:
		return pipeline.Query{}, fmt.Errorf("lon must be in [-180,180]")
	case radius <= 0:
		return pipeline.Query{}, fmt.Errorf("radius_km must be positive")
	case days < 1:
		return pipeline.Query{}, fmt.Errorf("days must be at least 1")
	}

	return pipeline.Query{Lat: lat, Lon: lon, RadiusKm: radius, Days: days}, nil
}

func requiredFloat(s, name string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

// API response types. Coordinates and distance are pointers because a
// detection may carry NaN for missing coordinates, which JSON cannot
// represent; those serialize as null.

type firesResponse struct {
	Query       queryJSON       `json:"query"`
	Outcome     string          `json:"outcome"`
	Count       int             `json:"count"`
	FetchedRows int             `json:"fetched_rows"`
	Detections  []detectionJSON `json:"detections"`
}

type queryJSON struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKm float64 `json:"radius_km"`
	Days     int     `json:"days"`
}

type detectionJSON struct {
	ID                string    `json:"id"`
	Satellite         string    `json:"satellite"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	AcqDate           string    `json:"acq_date"`
	AcqTime           string    `json:"acq_time"`
	FRP               float64   `json:"frp"`
	Intensity         string    `json:"intensity"`
	Confidence        string    `json:"confidence"`
	ConfidencePercent float64   `json:"confidence_percent"`
	FireRisk          string    `json:"fire_risk"`
	DistanceKm        *float64  `json:"distance_km"`
	ProcessedAt       time.Time `json:"processed_at"`
}

func toResponse(res pipeline.Result) firesResponse {
	out := firesResponse{
		Query: queryJSON{
			Lat:      res.Query.Lat,
			Lon:      res.Query.Lon,
			RadiusKm: res.Query.RadiusKm,
			Days:     res.Query.Days,
		},
		Outcome:     res.Outcome.String(),
		Count:       len(res.Detections),
		FetchedRows: res.FetchedRows,
		Detections:  make([]detectionJSON, 0, len(res.Detections)),
	}
	for _, d := range res.Detections {
		out.Detections = append(out.Detections, toDetectionJSON(d))
	}
	return out
}

func toDetectionJSON(d domain.Detection) detectionJSON {
	return detectionJSON{
		ID:                d.ID,
		Satellite:         d.Satellite,
		Latitude:          floatPtr(d.Latitude),
		Longitude:         floatPtr(d.Longitude),
		AcqDate:           d.AcqDate,
		AcqTime:           d.AcqTime,
		FRP:               d.FRP,
		Intensity:         d.Intensity,
		Confidence:        d.ConfidenceDisplay(),
		ConfidencePercent: d.ConfidencePercent,
		FireRisk:          d.FireRisk,
		DistanceKm:        floatPtr(d.DistanceKm),
		ProcessedAt:       d.ProcessedAt,
	}
}

func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
