// Package utils provide utilities functions
package utils

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// DefaultRequestTimeout is used when a caller passes a non-positive timeout.
const DefaultRequestTimeout = 10 * time.Second

// The consent cookie skips the EU consent interstitial, which carries no
// initial data. Every fetch mode sends it.
const (
	ConsentCookieName  = "CONSENT"
	ConsentCookieValue = "YES+cb"
)

// ConfiguredCollector returns a collector that looks like a desktop browser to the
// video platform. Each call returns a fresh collector, so callers never share
// visited-URL state or callbacks across requests.
func ConfiguredCollector(ctx context.Context, timeout time.Duration) *colly.Collector {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
	)
	collector.Context = ctx
	collector.SetRequestTimeout(timeout)

	// A plausible, changing User-Agent. The results page serves the same
	// embedded data to any modern desktop browser.
	extensions.RandomUserAgent(collector)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")

		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
		r.Headers.Set("Sec-Fetch-Dest", "document")
		r.Headers.Set("Sec-Fetch-Mode", "navigate")
		r.Headers.Set("Sec-Fetch-Site", "none")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
		r.Headers.Set("Cookie", ConsentCookieName+"="+ConsentCookieValue)
	})

	return collector
}
