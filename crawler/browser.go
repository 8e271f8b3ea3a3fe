package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Browser renders script-built pages (IEEE Xplore draws its abstract and
// authors client-side) in headless Chrome.
type Browser struct {
	logger          *zap.Logger
	limiter         *rate.Limiter
	timeout         time.Duration
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewBrowser(logger *zap.Logger, config *CrawlerConfig) *Browser {
	if config == nil {
		config = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent(config.UserAgent),

		// Stealth options
		chromedp.Flag("accept-language", "en-US,en;q=0.9"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-extensions", ""),
	)
	if config.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(config.ProxyURL))
	}

	return &Browser{
		logger:          logger,
		limiter:         rate.NewLimiter(rate.Limit(config.RendersPerSecond), 1),
		timeout:         config.RenderTimeout,
		ChromedpOptions: opts,
	}
}

// Render loads pageURL, waits for the body and returns the serialized DOM.
// StatusCode is taken from the first document response after redirects.
func (b *Browser) Render(ctx context.Context, pageURL string) (*Page, error) {
	logger := ContextLogger(ctx, b.logger)

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}

	// ================
	// Browser Context
	// ================
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.ChromedpOptions...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()
	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, b.timeout)
	defer timeoutCancel()

	logger.Info("Rendering page", zap.String("url", pageURL))

	var status atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, resp.Response.Status)
		}
	})

	var location, domHTML string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &domHTML),
	)
	if err != nil {
		logger.Error("Failed to render page",
			zap.String("url", pageURL),
			zap.Error(err))
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}
	code := int(status.Load())
	if code >= 400 {
		return nil, &HTTPError{URL: location, StatusCode: code}
	}
	if strings.TrimSpace(domHTML) == "" {
		return nil, fmt.Errorf("render %s: %w", pageURL, ErrEmptyBody)
	}

	logger.Info("Rendered page",
		zap.String("current_url", location),
		zap.Int("status_code", code),
		zap.Int("dom_length", len(domHTML)))

	return &Page{URL: location, StatusCode: code, Body: []byte(domHTML)}, nil
}
