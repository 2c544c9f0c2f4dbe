// Command firewatch interactively checks for wildfire detections around a
// point. It prompts for latitude, longitude, radius, and lookback days,
// queries each configured FIRMS sensor once, and prints a ranked report.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/couchcryptid/wildfire-watch/internal/adapter/firms"
	"github.com/couchcryptid/wildfire-watch/internal/config"
	"github.com/couchcryptid/wildfire-watch/internal/observability"
	"github.com/couchcryptid/wildfire-watch/internal/pipeline"
	"github.com/couchcryptid/wildfire-watch/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// All four inputs must parse before any network activity.
	q, err := promptQuery(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid input. Please enter valid numbers.")
		os.Exit(1)
	}

	feed := firms.NewClient(cfg.MapKey, cfg.BaseURL, cfg.RequestTimeout, logger)
	p := pipeline.New(feed, cfg.Satellites, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\nChecking for fires near (%g, %g) within %g km over the last %d days...\n",
		q.Lat, q.Lon, q.RadiusKm, q.Days)

	res, err := p.Run(ctx, q)
	if err != nil {
		logger.Error("run aborted", "error", err)
		os.Exit(1)
	}

	report.Render(os.Stdout, res)
}

// promptQuery collects the four required numeric inputs. The first value
// that fails to parse aborts the whole prompt.
func promptQuery(in *bufio.Reader, out io.Writer) (pipeline.Query, error) {
	lat, err := promptFloat(in, out, "Enter latitude: ")
	if err != nil {
		return pipeline.Query{}, err
	}
	lon, err := promptFloat(in, out, "Enter longitude: ")
	if err != nil {
		return pipeline.Query{}, err
	}
	radius, err := promptFloat(in, out, "Enter radius in km: ")
	if err != nil {
		return pipeline.Query{}, err
	}
	days, err := promptInt(in, out, "Enter number of days to check: ")
	if err != nil {
		return pipeline.Query{}, err
	}
	return pipeline.Query{Lat: lat, Lon: lon, RadiusKm: radius, Days: days}, nil
}

func promptFloat(in *bufio.Reader, out io.Writer, prompt string) (float64, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(line), 64)
}

func promptInt(in *bufio.Reader, out io.Writer, prompt string) (int, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}
