package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"paperscrape/crawler"
	"paperscrape/extractor"
	"paperscrape/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeScraper struct {
	lastOpts crawler.ScrapeOptions
	err      error
	store    storage.PaperRepository
}

func (f *fakeScraper) Scrape(ctx context.Context, pageURL string, opts crawler.ScrapeOptions) (*crawler.Result, error) {
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	res := &crawler.Result{
		URL:      pageURL,
		Site:     extractor.Detect(extractor.Hostname(pageURL)),
		Metadata: extractor.Normalize(extractor.PaperMetadata{Title: "Fetched"}, pageURL),
	}
	if opts.Save {
		if err := f.store.Save(ctx, &storage.Record{URL: pageURL, Site: res.Site, Metadata: res.Metadata}); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (f *fakeScraper) ScrapeHTML(ctx context.Context, pageURL string, body []byte) (*crawler.Result, error) {
	doc, err := extractor.ParseHTML(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	return &crawler.Result{
		URL:      pageURL,
		Site:     extractor.Detect(extractor.Hostname(pageURL)),
		Metadata: extractor.Extract(doc, pageURL),
	}, nil
}

func setup(t *testing.T, scraper *fakeScraper) (*gin.Engine, *storage.BoltStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(filepath.Join(t.TempDir(), "papers.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	scraper.store = store

	srv := NewServer(NewHandler(scraper, store, zap.NewNop()), zap.NewNop(), 0)
	return srv.Router(), store
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := setup(t, &fakeScraper{})

	w := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_InvalidTrustedProxiesLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.WarnLevel)

	srv := NewServer(NewHandler(&fakeScraper{}, nil, zap.NewNop()), zap.New(core), 0)
	srv.trustedProxies = []string{"not-an-ip"}
	router := srv.Router()

	entries := logs.FilterMessage("Failed to set trusted proxies").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "error")

	w := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtract_FromHTML(t *testing.T) {
	router, _ := setup(t, &fakeScraper{})

	body, err := json.Marshal(map[string]string{
		"url":  "https://arxiv.org/abs/2201.00001",
		"html": `<html><head><meta name="citation_title" content="Title:  Deep Learning for X  "></head></html>`,
	})
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/api/extract", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "arxiv", w.Header().Get("X-Paper-Site"))

	var got extractor.PaperMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Deep Learning for X", got.Title)
	assert.Equal(t, extractor.TypePreprint, got.Type)
	assert.Equal(t, "https://arxiv.org/abs/2201.00001", got.Link)
}

func TestExtract_FetchAndSave(t *testing.T) {
	scraper := &fakeScraper{}
	router, store := setup(t, scraper)
	link := "https://www.nature.com/articles/s1"

	w := do(router, http.MethodPost, "/api/extract", fmt.Sprintf(`{"url": %q, "render": true, "save": true}`, link))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, crawler.ScrapeOptions{Render: true, Save: true}, scraper.lastOpts)

	rec, err := store.Get(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, "Fetched", rec.Metadata.Title)

	w = do(router, http.MethodGet, "/api/papers/lookup?url="+url.QueryEscape(link), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got storage.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, link, got.URL)
	assert.Equal(t, extractor.SiteNature, got.Site)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"missing url", `{"html": "<html></html>"}`, nil, http.StatusBadRequest},
		{"unsupported url", `{"url": "chrome://newtab"}`, fmt.Errorf("validate: %w", crawler.ErrUnsupportedURL), http.StatusBadRequest},
		{"upstream 404", `{"url": "https://example.org/x"}`, &crawler.HTTPError{URL: "https://example.org/x", StatusCode: 404}, http.StatusBadGateway},
		{"empty body", `{"url": "https://example.org/x"}`, crawler.ErrEmptyBody, http.StatusBadGateway},
		{"timeout", `{"url": "https://example.org/x"}`, context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setup(t, &fakeScraper{err: tt.err})
			w := do(router, http.MethodPost, "/api/extract", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestListPapers(t *testing.T) {
	router, store := setup(t, &fakeScraper{})
	ctx := context.Background()

	w := do(router, http.MethodGet, "/api/papers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"papers": [], "count": 0}`, w.Body.String())

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &storage.Record{URL: fmt.Sprintf("https://example.org/%d", i)}))
	}

	w = do(router, http.MethodGet, "/api/papers?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Papers []storage.Record `json:"papers"`
		Count  int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Papers, 2)

	for _, bad := range []string{"0", "-1", "many"} {
		w = do(router, http.MethodGet, "/api/papers?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestLookupPaper_Errors(t *testing.T) {
	router, _ := setup(t, &fakeScraper{})

	w := do(router, http.MethodGet, "/api/papers/lookup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/papers/lookup?url=https%3A%2F%2Fexample.org%2Fnone", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	router, _ := setup(t, &fakeScraper{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
