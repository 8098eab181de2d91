// Package scraper downloads search-result pages from the video platform.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Fetch modes accepted by NewFetcher.
const (
	ModeHTTP    = "http"
	ModeBrowser = "browser"
)

// ErrUnknownMode is returned by NewFetcher for an unsupported mode.
var ErrUnknownMode = errors.New("unknown fetch mode")

// Fetcher returns the HTML of a page.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// NewFetcher picks the fetch implementation for mode. An empty mode means ModeHTTP.
func NewFetcher(mode string, timeout time.Duration, chromePath string) (Fetcher, error) {
	switch mode {
	case "", ModeHTTP:
		return NewHTMLFetcher(timeout), nil
	case ModeBrowser:
		return NewBrowserFetcher(timeout, chromePath), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
