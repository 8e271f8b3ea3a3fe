package crawler

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"paperscrape/enrich"
	"paperscrape/extractor"
	"paperscrape/storage"

	"go.uber.org/zap"
)

type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*Page, error)
}

type PageRenderer interface {
	Render(ctx context.Context, pageURL string) (*Page, error)
}

// ScrapeOptions selects how a page is loaded and what happens to the record.
type ScrapeOptions struct {
	Render bool
	Save   bool
}

// Result is the outcome of one URL in a batch.
type Result struct {
	URL      string                  `json:"url"`
	Site     extractor.Site          `json:"site"`
	Metadata extractor.PaperMetadata `json:"metadata"`
	Err      error                   `json:"-"`
}

// Scraper ties loading, extraction, enrichment and persistence together.
type Scraper struct {
	validator *URLValidator
	fetcher   PageFetcher
	renderer  PageRenderer
	extractor *extractor.Extractor
	enricher  enrich.Enricher
	store     storage.PaperRepository
	logger    *zap.Logger
}

type ScraperOption func(*Scraper)

// WithRenderer enables ScrapeOptions.Render.
func WithRenderer(r PageRenderer) ScraperOption {
	return func(s *Scraper) { s.renderer = r }
}

func WithEnricher(e enrich.Enricher) ScraperOption {
	return func(s *Scraper) { s.enricher = e }
}

// WithStore enables ScrapeOptions.Save.
func WithStore(store storage.PaperRepository) ScraperOption {
	return func(s *Scraper) { s.store = store }
}

func NewScraper(config *CrawlerConfig, fetcher PageFetcher, logger *zap.Logger, opts ...ScraperOption) *Scraper {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Scraper{
		validator: NewURLValidator(config),
		fetcher:   fetcher,
		extractor: extractor.New(extractor.WithLogger(logger)),
		enricher:  enrich.None{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape loads pageURL and extracts its metadata.
func (s *Scraper) Scrape(ctx context.Context, pageURL string, opts ScrapeOptions) (*Result, error) {
	ctx = ensureRequestID(ctx)
	logger := ContextLogger(ctx, s.logger)

	u, err := s.validator.Validate(pageURL)
	if err != nil {
		return nil, err
	}

	var page *Page
	if opts.Render {
		if s.renderer == nil {
			return nil, fmt.Errorf("render %s: no browser configured", pageURL)
		}
		page, err = s.renderer.Render(ctx, u.String())
	} else {
		page, err = s.fetcher.Fetch(ctx, u.String())
	}
	if err != nil {
		logger.Error("Failed to load page", zap.String("url", pageURL), zap.Error(err))
		return nil, err
	}

	location := page.URL
	if location == "" {
		location = u.String()
	}
	res, err := s.extract(ctx, location, page.Body)
	if err != nil {
		return nil, err
	}

	if opts.Save {
		if err := s.save(ctx, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ScrapeHTML extracts metadata from a page the caller already holds. pageURL
// is only used for dispatch and as the record's link.
func (s *Scraper) ScrapeHTML(ctx context.Context, pageURL string, body []byte) (*Result, error) {
	return s.extract(ensureRequestID(ctx), pageURL, body)
}

func (s *Scraper) extract(ctx context.Context, pageURL string, body []byte) (*Result, error) {
	logger := ContextLogger(ctx, s.logger)

	doc, err := extractor.ParseHTML(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	site := extractor.Detect(extractor.Hostname(pageURL))
	metadata := s.extractor.Extract(doc, pageURL)
	metadata = s.enricher.Enrich(body, pageURL, metadata)

	logger.Info("Extracted paper metadata",
		zap.String("url", pageURL),
		zap.String("site", string(site)),
		zap.String("enricher", s.enricher.Name()),
		zap.String("title", metadata.Title),
		zap.String("doi", metadata.DOI))

	return &Result{URL: pageURL, Site: site, Metadata: metadata}, nil
}

func (s *Scraper) save(ctx context.Context, res *Result) error {
	if s.store == nil {
		return fmt.Errorf("save %s: no store configured", res.URL)
	}
	rec := &storage.Record{
		URL:       res.URL,
		Site:      res.Site,
		Metadata:  res.Metadata,
		ScrapedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save %s: %w", res.URL, err)
	}
	return nil
}

// ScrapeAll scrapes urls with at most parallel requests in flight. Results are
// in input order; failures are reported per URL in Result.Err.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, parallel int, opts ScrapeOptions) []Result {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]Result, len(urls))
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup

	for i, pageURL := range urls {
		wg.Add(1)
		go func(i int, pageURL string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result{URL: pageURL, Err: ctx.Err()}
				return
			}

			res, err := s.Scrape(ctx, pageURL, opts)
			if err != nil {
				results[i] = Result{URL: pageURL, Err: err}
				return
			}
			results[i] = *res
		}(i, pageURL)
	}
	wg.Wait()

	return results
}
