package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/storage"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

// ErrEmptyBody is returned when a page answers with no content.
var ErrEmptyBody = errors.New("empty response body")

// Page is a loaded HTML document and the URL it was finally served from.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher downloads single pages with colly. Links are not followed.
type Fetcher struct {
	collector *colly.Collector
	logger    *zap.Logger
}

// NewFetcher builds the collector. store may be nil, in which case colly keeps
// cookies in memory.
func NewFetcher(config *CrawlerConfig, store storage.Storage, logger *zap.Logger) (*Fetcher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.AllowURLRevisit(),
	)

	if config.ProxyURL != "" {
		transport, err := newProxyTransport(config.ProxyURL)
		if err != nil {
			return nil, err
		}
		c.WithTransport(transport)
	}
	c.SetRequestTimeout(config.RequestTimeout)

	if store != nil {
		if err := c.SetStorage(store); err != nil {
			return nil, fmt.Errorf("set collector storage: %w", err)
		}
	}

	return &Fetcher{collector: c, logger: logger}, nil
}

// newProxyTransport routes requests through proxyURL. socks5 proxies (Tor) are
// dialed with x/net/proxy, anything else is treated as an HTTP proxy.
func newProxyTransport(proxyURL string) (*http.Transport, error) {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		dialContext := func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
		return &http.Transport{DialContext: dialContext}, nil
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(u)}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
}

// Fetch downloads pageURL. Non-2xx answers and empty bodies are errors.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	logger := ContextLogger(ctx, f.logger)

	c := f.collector.Clone()
	c.Context = ctx

	var page *Page
	var fetchErr error
	c.OnRequest(f.OnRequest(logger))
	c.OnResponse(func(r *colly.Response) {
		page = &Page{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       r.Body,
		}
	})
	c.OnError(f.OnError(logger, &fetchErr))

	if err := c.Visit(pageURL); err != nil {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if page == nil || len(strings.TrimSpace(string(page.Body))) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, ErrEmptyBody)
	}

	logger.Info("Fetched page",
		zap.String("url", page.URL),
		zap.Int("status_code", page.StatusCode),
		zap.Int("bytes", len(page.Body)))
	return page, nil
}
