package main

import (
	"paperscrape/config"
	"paperscrape/crawler"
	"paperscrape/enrich"
	"paperscrape/storage"

	"go.uber.org/zap"
)

// app holds what every command builds from config.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *storage.BoltStore
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, withCode(ExitConfigError, "loading config: %v", err)
	}

	logger, err := newLogger(debugLog || cfg.LogDevelopment)
	if err != nil {
		return nil, withCode(ExitConfigError, "creating logger: %v", err)
	}

	return &app{cfg: cfg, logger: logger}, nil
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openStore opens the bolt database named by DB_PATH.
func (a *app) openStore() (*storage.BoltStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(a.cfg.DBPath, a.logger)
	if err != nil {
		return nil, withCode(ExitConfigError, "opening database: %v", err)
	}
	a.store = store
	return store, nil
}

// scraper wires fetcher, browser, enricher and, when withStore is set, the
// bolt store for saved records and cookies.
func (a *app) scraper(enricherName string, withStore bool) (*crawler.Scraper, error) {
	crawlerCfg := crawler.FromConfig(a.cfg)

	enricher, err := enrich.New(enricherName, a.logger)
	if err != nil {
		return nil, withCode(ExitConfigError, "%v", err)
	}

	opts := []crawler.ScraperOption{
		crawler.WithEnricher(enricher),
		crawler.WithRenderer(crawler.NewBrowser(a.logger, crawlerCfg)),
	}

	var fetcher *crawler.Fetcher
	if withStore {
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		opts = append(opts, crawler.WithStore(store))
		fetcher, err = crawler.NewFetcher(crawlerCfg, store, a.logger)
		if err != nil {
			return nil, withCode(ExitConfigError, "creating fetcher: %v", err)
		}
	} else {
		fetcher, err = crawler.NewFetcher(crawlerCfg, nil, a.logger)
		if err != nil {
			return nil, withCode(ExitConfigError, "creating fetcher: %v", err)
		}
	}

	return crawler.NewScraper(crawlerCfg, fetcher, a.logger, opts...), nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}
