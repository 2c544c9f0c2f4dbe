// Package pipeline orchestrates the fetch-normalize-score-report flow for
// one fire-check query.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wildfire-watch/internal/domain"
	"github.com/couchcryptid/wildfire-watch/internal/observability"
)

// Outcome describes how a run ended. The two empty outcomes are distinct:
// OutcomeNoData means no sensor returned rows at all, OutcomeAllFiltered
// means rows came back but none met the reliability threshold.
type Outcome int

const (
	OutcomeReport Outcome = iota
	OutcomeNoData
	OutcomeAllFiltered
)

// String returns the metrics/API label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoData:
		return "no_data"
	case OutcomeAllFiltered:
		return "all_filtered"
	default:
		return "report"
	}
}

// Query is one fire-check request around a reference point.
type Query struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
	Days     int
}

// Result is the assembled output of one run. Detections is empty unless
// Outcome is OutcomeReport; FetchedRows counts raw rows before filtering.
type Result struct {
	Query       Query
	Detections  []domain.Detection
	FetchedRows int
	Outcome     Outcome
}

// Pipeline runs fire-check queries against a set of satellite sensors.
type Pipeline struct {
	feed       domain.FeedClient
	satellites []string
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Pipeline over the given sensor set.
func New(feed domain.FeedClient, satellites []string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		feed:       feed,
		satellites: satellites,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// run, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run executes one fetch-normalize-score-report cycle. Per-sensor fetch
// failures are logged and skipped; the only error returned is context
// cancellation.
func (p *Pipeline) Run(ctx context.Context, q Query) (Result, error) {
	start := time.Now()
	box := domain.ComputeBoundingBox(q.Lat, q.Lon, q.RadiusKm)

	raws, err := p.fetchAll(ctx, box, q.Days)
	if err != nil {
		return Result{}, err
	}

	res := Result{Query: q, FetchedRows: len(raws)}
	if len(raws) == 0 {
		res.Outcome = OutcomeNoData
		p.finish(res, start)
		return res, nil
	}

	dets := domain.NormalizeAll(raws)
	domain.ScoreDistances(q.Lat, q.Lon, dets)
	domain.ClassifyDetections(dets)

	report := domain.AssembleReport(dets)
	p.metrics.DetectionsFetched.Add(float64(len(dets)))
	p.metrics.DetectionsReported.Add(float64(len(report)))
	p.metrics.DetectionsFiltered.Add(float64(len(dets) - len(report)))

	if len(report) == 0 {
		res.Outcome = OutcomeAllFiltered
		p.finish(res, start)
		return res, nil
	}

	res.Outcome = OutcomeReport
	res.Detections = report
	p.finish(res, start)
	return res, nil
}

// fetchAll queries each sensor in turn and unions the rows in sensor order.
// A failed or empty sensor contributes nothing and never aborts the run.
func (p *Pipeline) fetchAll(ctx context.Context, box domain.BoundingBox, days int) ([]domain.RawRecord, error) {
	var raws []domain.RawRecord
	for _, sat := range p.satellites {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		fetchStart := time.Now()
		rows, err := p.feed.Fetch(ctx, sat, box, days)
		p.metrics.SensorFetchDuration.WithLabelValues(sat).Observe(time.Since(fetchStart).Seconds())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Warn("sensor fetch failed, skipping", "satellite", sat, "error", err)
			p.metrics.SensorFetches.WithLabelValues(sat, "error").Inc()
			continue
		}
		if len(rows) == 0 {
			p.metrics.SensorFetches.WithLabelValues(sat, "empty").Inc()
			continue
		}

		p.metrics.SensorFetches.WithLabelValues(sat, "success").Inc()
		raws = append(raws, rows...)
	}
	return raws, nil
}

func (p *Pipeline) finish(res Result, start time.Time) {
	p.metrics.Runs.WithLabelValues(res.Outcome.String()).Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)

	p.logger.Info("run complete",
		"outcome", res.Outcome.String(),
		"fetched_rows", res.FetchedRows,
		"reported", len(res.Detections),
	)
}
