package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	data    map[string]string
	uploads int
}

func (m *memCache) GetScrape(_ context.Context, url string) (string, error) {
	if v, ok := m.data[url]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func (m *memCache) UploadScrape(_ context.Context, url, text, _ string) (string, error) {
	m.data[url] = text
	m.uploads++
	return "scrapes/" + url, nil
}

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (s *stubRenderer) Render(context.Context, string, time.Duration) (string, error) {
	s.calls++
	return s.html, s.err
}

func newTestScraper(searchURL string, cache Cache, r Renderer) *Scraper {
	return NewScraper(Options{
		FetchTimeout:  2 * time.Second,
		SearchTimeout: 2 * time.Second,
		SearchURL:     searchURL,
		SearchPerMin:  6000,
		MaxChars:      2000,
	}, cache, r)
}

func TestFetchBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>x</title><script>var a=1</script></head>
<body><h1>Pallet  of</h1><p>12 units DeWalt</p><style>p{}</style></body></html>`))
	}))
	defer srv.Close()

	out := newTestScraper("", nil, nil).Fetch(context.Background(), srv.URL)
	require.True(t, out.OK, out.Reason)
	assert.Equal(t, "Pallet of 12 units DeWalt", out.Text)
	assert.Equal(t, srv.URL, out.URL)
}

func TestFetchTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body>" + strings.Repeat("é", 5000) + "</body>"))
	}))
	defer srv.Close()

	out := newTestScraper("", nil, nil).Fetch(context.Background(), srv.URL)
	require.True(t, out.OK)
	assert.Equal(t, 2000, len([]rune(out.Text)))
}

func TestFetchFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	out := newTestScraper("", nil, nil).Fetch(context.Background(), srv.URL)
	assert.False(t, out.OK)
	assert.Contains(t, out.Reason, "403")
	assert.Empty(t, out.Text)
}

func TestFetchUnreachable(t *testing.T) {
	out := newTestScraper("", nil, nil).Fetch(context.Background(), "http://127.0.0.1:1/nothing")
	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Reason)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	s := NewScraper(Options{FetchTimeout: 50 * time.Millisecond}, nil, nil)
	start := time.Now()
	out := s.Fetch(context.Background(), srv.URL)
	assert.False(t, out.OK)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchUsesCache(t *testing.T) {
	cache := &memCache{data: map[string]string{"https://cached.example": "from cache"}}
	out := newTestScraper("", cache, nil).Fetch(context.Background(), "https://cached.example")
	assert.True(t, out.OK)
	assert.True(t, out.Cached)
	assert.Equal(t, "from cache", out.Text)
	assert.Zero(t, cache.uploads)
}

func TestFetchStoresInCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body>fresh</body>"))
	}))
	defer srv.Close()

	cache := &memCache{data: map[string]string{}}
	out := newTestScraper("", cache, nil).Fetch(context.Background(), srv.URL)
	require.True(t, out.OK)
	assert.False(t, out.Cached)
	assert.Equal(t, 1, cache.uploads)
	assert.Equal(t, "fresh", cache.data[srv.URL])
}

func TestFetchFallsBackToBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := &stubRenderer{html: "<html><body><p>rendered text</p></body></html>"}
	out := newTestScraper("", nil, r).Fetch(context.Background(), srv.URL)
	require.True(t, out.OK, out.Reason)
	assert.Equal(t, "rendered text", out.Text)
	assert.Equal(t, 1, r.calls)
}

func TestFetchBrowserAlsoFails(t *testing.T) {
	r := &stubRenderer{err: errors.New("chromium missing")}
	out := newTestScraper("", nil, r).Fetch(context.Background(), "http://127.0.0.1:1/")
	assert.False(t, out.OK)
	assert.Contains(t, out.Reason, "chromium missing")
}

func TestFirstResult(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`<html><body>
<div class="g"><h3>Sony WH-1000XM4</h3><span>1,234 sold · avg $95</span></div>
<div class="g">second</div></body></html>`))
	}))
	defer srv.Close()

	text, err := newTestScraper(srv.URL, nil, nil).FirstResult(context.Background(), "eBay sold sony")
	require.NoError(t, err)
	assert.Equal(t, "eBay sold sony", gotQuery)
	assert.Contains(t, text, "1,234 sold")
	assert.NotContains(t, text, "second")
}

func TestFirstResultNoBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>consent wall</body></html>`))
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL, nil, nil).FirstResult(context.Background(), "q")
	assert.Error(t, err)
}

func TestFirstResultBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL, nil, nil).FirstResult(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestExtractCleanText(t *testing.T) {
	got := ExtractCleanText(`<html><head><title>t</title></head><body><script>x()</script><div> a <b>b</b></div>
<noscript>n</noscript><p>c</p></body></html>`)
	assert.Equal(t, "a b c", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "hé", truncate("héllo", 2))
	assert.Equal(t, "abc", truncate("abc", 0))
}
