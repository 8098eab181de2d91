package jobs

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
)

// sampleSize is how many records a probe keeps for eyeballing.
const sampleSize = 3

// ProbeReport describes how far extraction got for one live query.
type ProbeReport struct {
	Query   string                         `json:"query"`
	URL     string                         `json:"url"`
	Outcome songscraper.ExtractOutcome     `json:"outcome"`
	Items   int                            `json:"items"`
	Kept    int                            `json:"kept"`
	Skipped map[songscraper.SkipReason]int `json:"skipped"`
	Sample  []songscraper.SongRecord       `json:"sample"`
	Error   string                         `json:"error,omitempty"`
}

// Healthy reports whether the page still yields records. Anything else on a
// popular query usually means the page layout moved.
func (r ProbeReport) Healthy() bool {
	return r.Outcome == songscraper.OutcomeOK && r.Kept > 0
}

// ProbeExtraction fetches the results page for query and runs extraction over
// it. A fetch failure is returned as an error alongside a fetch_failed report.
func ProbeExtraction(ctx context.Context, fetcher songscraper.PageFetcher, searchURL, query string) (ProbeReport, error) {
	pageURL := songscraper.SearchURL(searchURL, query)
	report := ProbeReport{
		Query:   query,
		URL:     pageURL,
		Skipped: map[songscraper.SkipReason]int{},
		Sample:  []songscraper.SongRecord{},
	}

	html, err := fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		report.Outcome = songscraper.OutcomeFetchFailed
		report.Error = err.Error()
		return report, fmt.Errorf("probe %q: %w", query, err)
	}

	extracted := songscraper.Extract(html, sampleSize)
	report.Outcome = extracted.Outcome
	report.Items = extracted.Items
	report.Kept = extracted.Kept
	report.Skipped = extracted.Skipped
	report.Sample = extracted.Records
	return report, nil
}
