package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Cyclone1070/songscout-backend/internal/scraper"
	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
	"github.com/Cyclone1070/songscout-backend/jobs"
)

const (
	pageTop    = `<html><head><script>var ytInitialData = {"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[`
	pageBottom = `]}}]}}}}};</script></head><body></body></html>`
)

func video(id, length string) string {
	return fmt.Sprintf(`{"videoRenderer":{"videoId":%q,"title":{"runs":[{"text":"Song %s"}]},"lengthText":{"simpleText":%q}}}`, id, id, length)
}

func page(items ...string) string {
	return pageTop + strings.Join(items, ",") + pageBottom
}

func TestProbeExtraction(t *testing.T) {
	testCases := []struct {
		description string
		content     string
		want        jobs.ProbeReport
		healthy     bool
	}{
		{
			description: "healthy page",
			content: page(
				video("aaaaaaaaaaa", "3:00"),
				`{"channelRenderer":{"channelId":"UC1"}}`,
				video("bbbbbbbbbbb", "0:30"),
				video("ccccccccccc", "4:10"),
				video("ddddddddddd", "2:00"),
				video("eeeeeeeeeee", "5:00"),
			),
			want: jobs.ProbeReport{
				Outcome: songscraper.OutcomeOK,
				Items:   6,
				Kept:    4,
				Skipped: map[songscraper.SkipReason]int{songscraper.SkipNotVideo: 1, songscraper.SkipTooShort: 1},
				Sample: []songscraper.SongRecord{
					{Title: "Song aaaaaaaaaaa", VideoID: "aaaaaaaaaaa", DurationSeconds: 180, DurationText: "3:00"},
					{Title: "Song ccccccccccc", VideoID: "ccccccccccc", DurationSeconds: 250, DurationText: "4:10"},
					{Title: "Song ddddddddddd", VideoID: "ddddddddddd", DurationSeconds: 120, DurationText: "2:00"},
				},
			},
			healthy: true,
		},
		{
			description: "consent page without data",
			content:     `<html><body><form action="https://consent.youtube.com/save"></form></body></html>`,
			want: jobs.ProbeReport{
				Outcome: songscraper.OutcomeBlobMissing,
				Skipped: map[songscraper.SkipReason]int{},
				Sample:  []songscraper.SongRecord{},
			},
		},
		{
			description: "layout moved",
			content:     `<html><script>var ytInitialData = {"contents":{"singleColumnResults":{}}};</script></html>`,
			want: jobs.ProbeReport{
				Outcome: songscraper.OutcomeNoItems,
				Skipped: map[songscraper.SkipReason]int{},
				Sample:  []songscraper.SongRecord{},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, testCase.content)
			}))
			defer testServer.Close()

			got, err := jobs.ProbeExtraction(context.Background(), scraper.NewHTMLFetcher(0), testServer.URL+"/results", "lofi")
			if err != nil {
				t.Fatalf("ProbeExtraction() error: %v", err)
			}

			testCase.want.Query = "lofi"
			testCase.want.URL = testServer.URL + "/results?search_query=lofi"
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("ProbeExtraction() mismatch (-want +got):\n%s", diff)
			}
			if got.Healthy() != testCase.healthy {
				t.Errorf("Healthy() = %v, want %v", got.Healthy(), testCase.healthy)
			}
		})
	}
}

func TestProbeExtractionFetchError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer testServer.Close()

	got, err := jobs.ProbeExtraction(context.Background(), scraper.NewHTMLFetcher(0), testServer.URL, "lofi")

	if !errors.Is(err, scraper.ErrHTTPStatusNotOK) {
		t.Errorf("ProbeExtraction() error = %v, want %v", err, scraper.ErrHTTPStatusNotOK)
	}
	if got.Outcome != songscraper.OutcomeFetchFailed || got.Error == "" {
		t.Errorf("ProbeExtraction() = %+v, want fetch_failed with an error message", got)
	}
	if got.Healthy() {
		t.Error("Healthy() = true for a failed fetch")
	}
}

// pageByQuery serves a different page per search_query and counts fetches in flight.
type pageByQuery struct {
	mu       sync.Mutex
	pages    map[string]string
	inFlight int
	peak     int
}

func (p *pageByQuery) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	p.mu.Lock()
	p.inFlight++
	p.peak = max(p.peak, p.inFlight)
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	for query, html := range p.pages {
		if strings.HasSuffix(pageURL, "search_query="+query) {
			return html, nil
		}
	}
	return "", errors.New("connection reset")
}

func TestProbeExtractions(t *testing.T) {
	fetcher := &pageByQuery{pages: map[string]string{
		"pop":  page(video("aaaaaaaaaaa", "3:00")),
		"rock": page(),
	}}
	var buffer bytes.Buffer

	reports, err := jobs.ProbeExtractions(context.Background(), fetcher, "https://example.com/results", []string{"pop", "rock", "jazz"}, 2, &buffer)
	if err != nil {
		t.Fatalf("ProbeExtractions() error: %v", err)
	}

	var decoded []jobs.ProbeReport
	if err := json.NewDecoder(&buffer).Decode(&decoded); err != nil {
		t.Fatalf("Error decoding JSON: %v", err)
	}
	if diff := cmp.Diff(reports, decoded); diff != "" {
		t.Errorf("written reports mismatch (-want +got):\n%s", diff)
	}

	gotOutcomes := []songscraper.ExtractOutcome{}
	for _, report := range reports {
		gotOutcomes = append(gotOutcomes, report.Outcome)
	}
	wantOutcomes := []songscraper.ExtractOutcome{songscraper.OutcomeOK, songscraper.OutcomeNoItems, songscraper.OutcomeFetchFailed}
	if diff := cmp.Diff(wantOutcomes, gotOutcomes); diff != "" {
		t.Errorf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if fetcher.peak > 2 {
		t.Errorf("peak concurrent fetches = %d, want at most 2", fetcher.peak)
	}
}
