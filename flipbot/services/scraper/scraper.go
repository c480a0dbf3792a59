package scraper

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"flipbot/flipbot/utils/logging"
	"flipbot/flipbot/utils/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Cache stores scraped page text by URL.
type Cache interface {
	GetScrape(ctx context.Context, url string) (string, error)
	UploadScrape(ctx context.Context, url, text, metadata string) (string, error)
}

// Renderer loads a page in a real browser and returns its HTML.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (string, error)
}

type Options struct {
	FetchTimeout  time.Duration
	SearchTimeout time.Duration
	SearchURL     string
	SearchPerMin  int
	MaxChars      int
	UserAgent     string
}

// Scraper fetches pages and search results over plain HTTP, with an optional
// cache in front and an optional browser renderer behind.
type Scraper struct {
	http     *resty.Client
	opts     Options
	limiter  *rate.Limiter
	cache    Cache
	renderer Renderer
}

// NewScraper builds a Scraper. cache and renderer may be nil.
func NewScraper(opts Options, cache Cache, renderer Renderer) *Scraper {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 10 * time.Second
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 2000
	}
	if opts.SearchPerMin <= 0 {
		opts.SearchPerMin = 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetDebug(false).
		SetHeaders(map[string]string{
			"Accept":          "text/html,application/xhtml+xml,*/*",
			"Accept-Language": "en-US,en;q=0.9",
			"User-Agent":      opts.UserAgent,
		})

	perSecond := rate.Limit(float64(opts.SearchPerMin) / 60)
	return &Scraper{
		http:     client,
		opts:     opts,
		limiter:  rate.NewLimiter(perSecond, 1),
		cache:    cache,
		renderer: renderer,
	}
}

// Fetch scrapes the body text of targetURL. It never returns an error; a
// failed fetch comes back with OK false and the reason.
func (s *Scraper) Fetch(ctx context.Context, targetURL string) types.ScrapeOutcome {
	defer logging.LogDuration(ctx, "scraper_fetch")()

	if s.cache != nil {
		if cached, err := s.cache.GetScrape(ctx, targetURL); err == nil && cached != "" {
			return types.ScrapeOutcome{URL: targetURL, Text: cached, OK: true, Cached: true}
		}
	}

	text, err := s.fetchHTTP(ctx, targetURL)
	if err != nil && s.renderer != nil {
		logging.AppLogger.Info("plain fetch failed, trying browser", zap.String("url", targetURL), zap.Error(err))
		text, err = s.fetchBrowser(ctx, targetURL)
	}
	if err != nil {
		logging.AppLogger.Info("page scrape failed", zap.String("url", targetURL), zap.Error(err))
		return types.ScrapeOutcome{URL: targetURL, OK: false, Reason: err.Error()}
	}

	text = truncate(text, s.opts.MaxChars)
	if s.cache != nil {
		if _, err := s.cache.UploadScrape(ctx, targetURL, text, "http"); err != nil {
			logging.ErrorLogger.Error("scrape cache upload failed", zap.String("url", targetURL), zap.Error(err))
		}
	}
	return types.ScrapeOutcome{URL: targetURL, Text: text, OK: true}
}

func (s *Scraper) fetchHTTP(ctx context.Context, targetURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	resp, err := s.http.R().SetContext(ctx).Get(targetURL)
	if err != nil {
		return "", eris.Wrap(err, "scraper: fetch")
	}
	if resp.IsError() {
		return "", eris.Errorf("scraper: status %d", resp.StatusCode())
	}
	return BodyText(resp.Body())
}

func (s *Scraper) fetchBrowser(ctx context.Context, targetURL string) (string, error) {
	content, err := s.renderer.Render(ctx, targetURL, s.opts.FetchTimeout)
	if err != nil {
		return "", eris.Wrap(err, "scraper: browser render")
	}
	text := ExtractCleanText(content)
	if text == "" {
		return "", eris.New("scraper: browser page has no text")
	}
	return text, nil
}

// FirstResult runs a search and returns the text of the first result block
// (div.g). Search pages have no stable structure, so callers must treat an
// error here as routine.
func (s *Scraper) FirstResult(ctx context.Context, query string) (string, error) {
	defer logging.LogDuration(ctx, "scraper_first_result")()

	ctx, cancel := context.WithTimeout(ctx, s.opts.SearchTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "scraper: search rate limit")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(s.opts.SearchURL)
	if err != nil {
		return "", eris.Wrap(err, "scraper: search")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", eris.Errorf("scraper: search status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", eris.Wrap(err, "scraper: parse search page")
	}
	first := doc.Find("div.g").First()
	if first.Length() == 0 {
		return "", eris.New("scraper: no result blocks on search page")
	}
	return first.Text(), nil
}
