package songscraper_test

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Cyclone1070/songscout-backend/internal/songscraper"
)

func TestRecommend(t *testing.T) {
	t.Run("mood query gets the playlist suffix", func(t *testing.T) {
		testCases := []struct {
			description string
			mood        string
			want        string
		}{
			{"explicit mood", "romantic", "romantic songs playlist"},
			{"mood is trimmed", "  sad ", "sad songs playlist"},
			{"empty mood uses the default", "", "happy songs playlist"},
			{"blank mood uses the default", "   ", "happy songs playlist"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.description, func(t *testing.T) {
				fetcher := &stubFetcher{html: searchPage(videoItems(3, "3:00")...)}
				searcher := songscraper.NewSearcher(fetcher, songscraper.Options{SearchURL: "https://example.com/results"}, nil)

				if _, err := searcher.Recommend(context.Background(), testCase.mood, 10); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if len(fetcher.urls) != 1 {
					t.Fatalf("got %d fetches, want 1", len(fetcher.urls))
				}
				requested, err := url.Parse(fetcher.urls[0])
				if err != nil {
					t.Fatalf("bad request url: %v", err)
				}
				if got := requested.Query().Get("search_query"); got != testCase.want {
					t.Errorf("got query %q, want %q", got, testCase.want)
				}
			})
		}
	})

	t.Run("configured default mood and suffix", func(t *testing.T) {
		fetcher := &stubFetcher{html: searchPage(videoItems(1, "3:00")...)}
		searcher := songscraper.NewSearcher(fetcher, songscraper.Options{DefaultMood: "focus", MoodSuffix: " music"}, nil)

		if _, err := searcher.Recommend(context.Background(), "", 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		requested, _ := url.Parse(fetcher.urls[0])
		if got := requested.Query().Get("search_query"); got != "focus music" {
			t.Errorf("got query %q, want %q", got, "focus music")
		}
	})

	t.Run("results are drawn from the pool and capped", func(t *testing.T) {
		fetcher := &stubFetcher{html: searchPage(videoItems(30, "3:30")...)}
		searcher := songscraper.NewSearcher(fetcher, songscraper.Options{RecommendPoolSize: 20}, nil)

		pool := map[string]bool{}
		for _, id := range videoIDs(songscraper.Extract(fetcher.html, 20).Records) {
			pool[id] = true
		}

		for run := 0; run < 5; run++ {
			got, err := searcher.Recommend(context.Background(), "happy", 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 10 {
				t.Fatalf("got %d records, want 10", len(got))
			}
			seen := map[string]bool{}
			for _, record := range got {
				if !pool[record.VideoID] {
					t.Errorf("record %s is outside the first 20 results", record.VideoID)
				}
				if seen[record.VideoID] {
					t.Errorf("record %s returned twice", record.VideoID)
				}
				seen[record.VideoID] = true
				if record.DurationSeconds < songscraper.MinDurationSeconds {
					t.Errorf("record %s has %d seconds", record.VideoID, record.DurationSeconds)
				}
			}
		}
	})

	t.Run("shuffling keeps every record of a small pool", func(t *testing.T) {
		fetcher := &stubFetcher{html: searchPage(videoItems(6, "3:30")...)}
		searcher := songscraper.NewSearcher(fetcher, songscraper.Options{}, nil)

		got, err := searcher.Recommend(context.Background(), "chill", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		gotIDs := videoIDs(got)
		sort.Strings(gotIDs)
		wantIDs := videoIDs(songscraper.Extract(fetcher.html, 10).Records)
		if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
			t.Errorf("Recommend() set mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("order varies between calls", func(t *testing.T) {
		fetcher := &stubFetcher{html: searchPage(videoItems(20, "3:30")...)}
		searcher := songscraper.NewSearcher(fetcher, songscraper.Options{}, nil)

		first, _ := searcher.Recommend(context.Background(), "happy", 20)
		// 20! orderings make twenty identical shuffles practically impossible.
		for attempt := 0; attempt < 20; attempt++ {
			next, _ := searcher.Recommend(context.Background(), "happy", 20)
			if !cmp.Equal(videoIDs(first), videoIDs(next)) {
				return
			}
		}
		t.Error("twenty consecutive recommendations came back in the same order")
	})

	t.Run("fetch failure is returned", func(t *testing.T) {
		fetcher := &stubFetcher{err: errors.New("connection reset")}
		searcher := songscraper.NewSearcher(fetcher, songscraper.Options{}, nil)

		_, err := searcher.Recommend(context.Background(), "happy", 10)

		if !errors.Is(err, songscraper.ErrUpstreamFetch) {
			t.Errorf("got %v, want it to wrap %v", err, songscraper.ErrUpstreamFetch)
		}
	})
}
