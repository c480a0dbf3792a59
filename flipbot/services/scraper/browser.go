package scraper

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rotisserie/eris"
)

// BrowserRenderer renders pages in headless Chromium for sites that refuse
// plain HTTP clients.
type BrowserRenderer struct {
	pw *playwright.Playwright
}

// NewBrowserRenderer initializes Playwright
func NewBrowserRenderer() (*BrowserRenderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, eris.Wrap(err, "scraper: start playwright")
	}
	return &BrowserRenderer{pw: pw}, nil
}

// Close stops Playwright
func (b *BrowserRenderer) Close() {
	if b.pw != nil {
		b.pw.Stop()
	}
}

// Render loads targetURL and returns the page HTML once the DOM is ready.
func (b *BrowserRenderer) Render(ctx context.Context, targetURL string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}

	browser, err := b.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		return "", err
	}
	defer browser.Close()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(defaultUserAgent),
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		return "", err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	// images and fonts never carry manifest text
	if err := page.Route("**/*.{png,jpg,jpeg,gif,svg,woff,woff2}", func(route playwright.Route) {
		route.Abort()
	}); err != nil {
		return "", err
	}

	if _, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", err
	}

	return page.Content()
}
