package crawler

import (
	"fmt"
	"net/http"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// HTTPError is a non-2xx answer from the fetched site.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// OnRequest handles request events
func (f *Fetcher) OnRequest(logger *zap.Logger) colly.RequestCallback {
	return func(r *colly.Request) {
		logger.Debug("Requesting page", zap.String("url", r.URL.String()))
	}
}

// OnError records the first failure of a fetch into dst.
func (f *Fetcher) OnError(logger *zap.Logger, dst *error) colly.ErrorCallback {
	return func(r *colly.Response, err error) {
		if r == nil || r.Request == nil {
			logger.Error("Request failed", zap.Error(err))
			*dst = fmt.Errorf("fetch: %w", err)
			return
		}

		logger.Error("HTTP error",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status_code", r.StatusCode),
			zap.Error(err))

		if r.StatusCode >= 300 {
			*dst = &HTTPError{URL: r.Request.URL.String(), StatusCode: r.StatusCode}
			return
		}
		*dst = fmt.Errorf("fetch %s: %w", r.Request.URL, err)
	}
}
