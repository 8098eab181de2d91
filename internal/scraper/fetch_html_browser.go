package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/Cyclone1070/songscout-backend/internal/utils"
)

const defaultBrowserTimeout = 30 * time.Second

// BrowserFetcher renders the page in headless Chrome before handing back its HTML.
// It is slower than HTMLFetcher but gets past pages that only hydrate in a browser.
type BrowserFetcher struct {
	timeout  time.Duration
	execPath string
}

func NewBrowserFetcher(timeout time.Duration, execPath string) *BrowserFetcher {
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}
	return &BrowserFetcher{timeout: timeout, execPath: execPath}
}

func (f *BrowserFetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	domain, err := cookieDomain(pageURL)
	if err != nil {
		return "", err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("mute-audio", true),
	)
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}

	allocatorCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	newTab, cancel := chromedp.NewContext(allocatorCtx)
	defer cancel()

	tab, cancel := context.WithTimeout(newTab, f.timeout)
	defer cancel()

	var htmlContent string
	err = chromedp.Run(tab,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookie(utils.ConsentCookieName, utils.ConsentCookieValue).
				WithDomain(domain).
				WithPath("/").
				Do(ctx)
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}
	if htmlContent == "" {
		return "", ErrEmptyPage
	}
	return htmlContent, nil
}

// cookieDomain is the host the consent cookie is set for before navigating.
func cookieDomain(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("parse %s: no host", pageURL)
	}
	return parsed.Hostname(), nil
}
