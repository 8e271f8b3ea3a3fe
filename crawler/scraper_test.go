package crawler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"paperscrape/enrich"
	"paperscrape/extractor"
	"paperscrape/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const arxivPage = `<html><head>
<meta name="citation_title" content="Attention Is All You Need">
<meta name="citation_arxiv_id" content="1706.03762">
</head><body><div class="authors"><a>Ashish Vaswani</a></div></body></html>`

type fakeLoader struct {
	pages    map[string]string
	redirect map[string]string
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration
}

func (f *fakeLoader) load(ctx context.Context, pageURL string) (*Page, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	body, ok := f.pages[pageURL]
	if !ok {
		return nil, &HTTPError{URL: pageURL, StatusCode: 404}
	}
	final := pageURL
	if to, ok := f.redirect[pageURL]; ok {
		final = to
	}
	return &Page{URL: final, StatusCode: 200, Body: []byte(body)}, nil
}

func (f *fakeLoader) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	return f.load(ctx, pageURL)
}

type fakeRenderer struct{ fakeLoader }

func (f *fakeRenderer) Render(ctx context.Context, pageURL string) (*Page, error) {
	return f.load(ctx, pageURL)
}

func TestScraper_Scrape(t *testing.T) {
	link := "https://arxiv.org/abs/1706.03762"
	fetcher := &fakeLoader{pages: map[string]string{link: arxivPage}}
	s := NewScraper(nil, fetcher, zap.NewNop())

	res, err := s.Scrape(context.Background(), link, ScrapeOptions{})
	require.NoError(t, err)
	assert.Equal(t, extractor.SiteArxiv, res.Site)
	assert.Equal(t, link, res.URL)
	assert.Equal(t, "Attention Is All You Need", res.Metadata.Title)
	assert.Equal(t, "10.48550/arXiv.1706.03762", res.Metadata.DOI)
	assert.Equal(t, link, res.Metadata.Link)
}

func TestScraper_UsesFinalLocation(t *testing.T) {
	short := "https://doi.example/abc"
	final := "https://www.nature.com/articles/s1"
	fetcher := &fakeLoader{
		pages:    map[string]string{short: `<html><head><meta name="citation_title" content="N"></head></html>`},
		redirect: map[string]string{short: final},
	}

	res, err := NewScraper(nil, fetcher, zap.NewNop()).Scrape(context.Background(), short, ScrapeOptions{})
	require.NoError(t, err)
	assert.Equal(t, extractor.SiteNature, res.Site)
	assert.Equal(t, final, res.Metadata.Link)
	assert.Equal(t, "Nature", res.Metadata.Venue)
}

func TestScraper_RejectsUnsupportedURL(t *testing.T) {
	fetcher := &fakeLoader{}
	s := NewScraper(nil, fetcher, zap.NewNop())

	_, err := s.Scrape(context.Background(), "chrome://newtab", ScrapeOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedURL)
	assert.Zero(t, fetcher.calls.Load())
}

func TestScraper_Render(t *testing.T) {
	link := "https://ieeexplore.ieee.org/document/1"
	fetcher := &fakeLoader{}
	renderer := &fakeRenderer{fakeLoader{pages: map[string]string{
		link: `<html><body><h1 class="document-title">Rendered</h1></body></html>`,
	}}}

	_, err := NewScraper(nil, fetcher, zap.NewNop()).Scrape(context.Background(), link, ScrapeOptions{Render: true})
	assert.Error(t, err)

	s := NewScraper(nil, fetcher, zap.NewNop(), WithRenderer(renderer))
	res, err := s.Scrape(context.Background(), link, ScrapeOptions{Render: true})
	require.NoError(t, err)
	assert.Equal(t, "Rendered", res.Metadata.Title)
	assert.Zero(t, fetcher.calls.Load())
	assert.EqualValues(t, 1, renderer.calls.Load())
}

func TestScraper_Save(t *testing.T) {
	link := "https://arxiv.org/abs/1706.03762"
	fetcher := &fakeLoader{pages: map[string]string{link: arxivPage}}

	_, err := NewScraper(nil, fetcher, zap.NewNop()).Scrape(context.Background(), link, ScrapeOptions{Save: true})
	assert.Error(t, err)

	store, err := storage.Open(filepath.Join(t.TempDir(), "papers.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := NewScraper(nil, fetcher, zap.NewNop(), WithStore(store))
	_, err = s.Scrape(context.Background(), link, ScrapeOptions{Save: true})
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, extractor.SiteArxiv, rec.Site)
	assert.Equal(t, "Attention Is All You Need", rec.Metadata.Title)
}

func TestScraper_ScrapeHTML(t *testing.T) {
	s := NewScraper(nil, nil, zap.NewNop(), WithEnricher(enrich.None{}))

	res, err := s.ScrapeHTML(context.Background(), "https://example.org/p", []byte(`<html><head><title>Offline</title></head></html>`))
	require.NoError(t, err)
	assert.Equal(t, extractor.SiteGeneric, res.Site)
	assert.Equal(t, "Offline", res.Metadata.Title)
	assert.Equal(t, extractor.TypeArticle, res.Metadata.Type)
}

func TestScraper_ScrapeAll(t *testing.T) {
	pages := map[string]string{}
	var urls []string
	for i := 0; i < 8; i++ {
		link := fmt.Sprintf("https://example.org/paper/%d", i)
		pages[link] = fmt.Sprintf(`<html><head><title>Paper %d</title></head></html>`, i)
		urls = append(urls, link)
	}
	urls = append(urls, "https://example.org/missing", "about:blank")

	fetcher := &fakeLoader{pages: pages, delay: 10 * time.Millisecond}
	s := NewScraper(nil, fetcher, zap.NewNop())

	results := s.ScrapeAll(context.Background(), urls, 3, ScrapeOptions{})
	require.Len(t, results, len(urls))
	for i := 0; i < 8; i++ {
		require.NoError(t, results[i].Err)
		assert.Equal(t, fmt.Sprintf("Paper %d", i), results[i].Metadata.Title)
	}

	var httpErr *HTTPError
	assert.True(t, errors.As(results[8].Err, &httpErr))
	assert.Equal(t, "https://example.org/missing", results[8].URL)
	assert.ErrorIs(t, results[9].Err, ErrUnsupportedURL)

	assert.LessOrEqual(t, fetcher.maxSeen.Load(), int32(3))
}

func TestScraper_ScrapeAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeLoader{pages: map[string]string{}}
	results := NewScraper(nil, fetcher, zap.NewNop()).ScrapeAll(ctx, []string{"https://a.example/1", "https://b.example/2"}, 0, ScrapeOptions{})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
