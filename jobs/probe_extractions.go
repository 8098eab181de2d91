package jobs

import (
	"context"
	"encoding/json"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
)

// ProbeExtractions probes every query with at most concurrency fetches in
// flight and writes the reports to writer as indented JSON, in query order.
// Individual fetch failures stay inside their report; only a write failure or
// a cancelled context is returned.
func ProbeExtractions(ctx context.Context, fetcher songscraper.PageFetcher, searchURL string, queries []string, concurrency int, writer io.Writer) ([]ProbeReport, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	reports := make([]ProbeReport, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, query := range queries {
		g.Go(func() error {
			report, _ := ProbeExtraction(gctx, fetcher, searchURL, query)
			reports[i] = report
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return reports, err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return reports, err
	}
	return reports, nil
}
