package songscraper_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
)

const (
	pageTop    = `<html><head><script>var ytInitialData = {"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[`
	pageBottom = `]}}]}}}}};window.ytcsi = {};</script></head><body></body></html>`
)

// searchPage wraps result-item nodes in a page shaped like the platform's.
func searchPage(items ...string) string {
	return pageTop + strings.Join(items, ",") + pageBottom
}

// videoItem is a complete videoRenderer node with the given id and length label.
func videoItem(id, length string) string {
	return fmt.Sprintf(
		`{"videoRenderer":{"videoId":%q,"title":{"runs":[{"text":"Song %s"}]},"ownerText":{"runs":[{"text":"Artist %s"}]},"viewCountText":{"simpleText":"1,000 views"},"thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/vi/%s/default.jpg"},{"url":"https://i.ytimg.com/vi/%s/hqdefault.jpg"}]},"lengthText":{"simpleText":%q}}}`,
		id, id, id, id, id, length,
	)
}

// videoItems returns n videos with distinct ids, all long enough to be kept.
func videoItems(n int, length string) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = videoItem(fmt.Sprintf("video%06d", i), length)
	}
	return items
}

func readFixture(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("testdata/search_page.html")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return string(content)
}

// stubFetcher serves a fixed page or error and remembers the requested URLs.
type stubFetcher struct {
	html string
	err  error
	urls []string
}

func (f *stubFetcher) FetchHTML(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.html, f.err
}
