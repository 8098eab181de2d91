// Package songscraper turns the platform's search-result pages into song records.
//
// A run goes through Fetching, Locating, Parsing, Navigating, Normalizing and
// Truncated. Any state can end the run early with an empty result; only a failed
// fetch is reported as an error, since a page without data is a valid answer.
package songscraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/Cyclone1070/songscout-backend/internal/observability"
)

// ErrUpstreamFetch wraps any failure to download the search page.
var ErrUpstreamFetch = errors.New("upstream fetch failed")

// DefaultSearchURL is the platform's results page.
const DefaultSearchURL = "https://www.youtube.com/results"

// PageFetcher returns the HTML of a page.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// Options configures a Searcher. Zero values fall back to the defaults below.
type Options struct {
	SearchURL string
	// DefaultMood is used by Recommend when the caller gives none.
	DefaultMood string
	// MoodSuffix is appended to the mood to build the recommendation query.
	MoodSuffix string
	// RecommendPoolSize caps the intermediate list Recommend shuffles.
	RecommendPoolSize int
}

const (
	defaultMood              = "happy"
	defaultMoodSuffix        = " songs playlist"
	defaultRecommendPoolSize = 20
)

type Searcher struct {
	fetcher PageFetcher
	opts    Options
	logger  *zerolog.Logger
}

func NewSearcher(fetcher PageFetcher, opts Options, logger *zerolog.Logger) *Searcher {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	if opts.DefaultMood == "" {
		opts.DefaultMood = defaultMood
	}
	if opts.MoodSuffix == "" {
		opts.MoodSuffix = defaultMoodSuffix
	}
	if opts.RecommendPoolSize <= 0 {
		opts.RecommendPoolSize = defaultRecommendPoolSize
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Searcher{fetcher: fetcher, opts: opts, logger: logger}
}

// SearchURL builds the results-page URL for query.
func SearchURL(base, query string) string {
	values := url.Values{}
	values.Set("search_query", query)
	return base + "?" + values.Encode()
}

// Search fetches the results page for query and returns at most maxResults
// records in platform order. The returned slice is never nil when err is nil.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]SongRecord, error) {
	pageURL := SearchURL(s.opts.SearchURL, query)

	start := time.Now()
	html, err := s.fetcher.FetchHTML(ctx, pageURL)
	observability.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.PipelineRuns.WithLabelValues(string(OutcomeFetchFailed)).Inc()
		s.logger.Debug().Err(err).Str("query", query).Msg("search page fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	report := Extract(html, maxResults)
	s.record(query, report)
	return report.Records, nil
}

func (s *Searcher) record(query string, report ExtractReport) {
	observability.PipelineRuns.WithLabelValues(string(report.Outcome)).Inc()
	observability.RecordsReturned.Observe(float64(len(report.Records)))
	for reason, count := range report.Skipped {
		observability.ItemsSkipped.WithLabelValues(string(reason)).Add(float64(count))
	}

	switch report.Outcome {
	case OutcomeBlobMissing, OutcomeBlobMalformed:
		s.logger.Warn().
			Str("query", query).
			Str("outcome", string(report.Outcome)).
			Msg("no initial data extracted from search page")
	default:
		s.logger.Debug().
			Str("query", query).
			Str("outcome", string(report.Outcome)).
			Int("items", report.Items).
			Int("kept", report.Kept).
			Int("returned", len(report.Records)).
			Msg("search page extracted")
	}
}

// Extract runs the pipeline from Locating onwards over an already fetched page.
func Extract(html string, maxResults int) ExtractReport {
	report := ExtractReport{
		Skipped: map[SkipReason]int{},
		Records: []SongRecord{},
	}

	blob, ok := LocateInitialData(html)
	if !ok {
		report.Outcome = OutcomeBlobMissing
		return report
	}
	if !gjson.Valid(blob) {
		report.Outcome = OutcomeBlobMalformed
		return report
	}

	items := NavigateItems(gjson.Parse(blob))
	report.Items = len(items)
	if len(items) == 0 {
		report.Outcome = OutcomeNoItems
		return report
	}

	for _, item := range items {
		record, reason := NormalizeRecord(item)
		if reason != SkipNone {
			report.Skipped[reason]++
			continue
		}
		report.Records = append(report.Records, record)
	}
	report.Kept = len(report.Records)
	report.Records = truncate(report.Records, maxResults)
	report.Outcome = OutcomeOK
	return report
}

func truncate(records []SongRecord, maxResults int) []SongRecord {
	if maxResults <= 0 {
		return []SongRecord{}
	}
	if len(records) > maxResults {
		return records[:maxResults]
	}
	return records
}
