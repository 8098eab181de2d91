package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/songscout-backend/internal/utils"
	"github.com/gocolly/colly/v2"
)

var (
	// ErrHTTPStatusNotOK is returned when the page answers with a non-2xx status.
	ErrHTTPStatusNotOK = errors.New("http status not ok")
	// ErrEmptyPage is returned when the request succeeded but carried no body.
	ErrEmptyPage = errors.New("empty page")
)

// HTMLFetcher downloads a page with a plain HTTP collector.
type HTMLFetcher struct {
	timeout time.Duration
}

func NewHTMLFetcher(timeout time.Duration) *HTMLFetcher {
	return &HTMLFetcher{timeout: timeout}
}

// FetchHTML returns the raw response body of url. The body is not re-serialized,
// so inline scripts reach the caller byte for byte.
func (f *HTMLFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	var responseBody string
	var err error

	collector := utils.ConfiguredCollector(ctx, f.timeout)

	collector.OnResponse(func(r *colly.Response) {
		responseBody = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, e error) {
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("%w: %d: %s", ErrHTTPStatusNotOK, r.StatusCode, e.Error())
			return
		}
		err = fmt.Errorf("request %s: %w", url, e)
	})

	visitErr := collector.Visit(url)
	if err != nil {
		return "", err
	}
	if visitErr != nil {
		return "", fmt.Errorf("request %s: %w", url, visitErr)
	}
	if responseBody == "" {
		return "", ErrEmptyPage
	}
	return responseBody, nil
}
