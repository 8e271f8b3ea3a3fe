package crawler

import (
	"time"

	"paperscrape/config"
)

type CrawlerConfig struct {
	UserAgent        string
	RequestTimeout   time.Duration
	ProxyURL         string
	RenderTimeout    time.Duration
	RendersPerSecond float64
	AllowedSchemes   []string
}

// DefaultConfig returns a default crawler configuration
func DefaultConfig() *CrawlerConfig {
	return &CrawlerConfig{
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestTimeout:   30 * time.Second,
		RenderTimeout:    60 * time.Second,
		RendersPerSecond: 0.5,
		AllowedSchemes:   []string{"http", "https"},
	}
}

// FromConfig maps the application config onto the crawler's.
func FromConfig(cfg *config.Config) *CrawlerConfig {
	c := DefaultConfig()
	c.UserAgent = cfg.UserAgent
	c.RequestTimeout = cfg.RequestTimeout
	c.ProxyURL = cfg.ProxyURL
	c.RenderTimeout = cfg.RenderTimeout
	c.RendersPerSecond = cfg.RendersPerSecond
	return c
}
