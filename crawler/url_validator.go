package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ErrUnsupportedURL is returned for URLs the crawler will not load, such as
// browser-internal pages.
var ErrUnsupportedURL = errors.New("unsupported url")

type URLValidator struct {
	allowedSchemes []string
}

// NewURLValidator creates a new URL validator with the given configuration
func NewURLValidator(config *CrawlerConfig) *URLValidator {
	return &URLValidator{
		allowedSchemes: config.AllowedSchemes,
	}
}

// Validate parses raw and checks that it is an absolute URL the crawler can
// load.
func (v *URLValidator) Validate(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if !slices.Contains(v.allowedSchemes, scheme) {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrUnsupportedURL)
	}
	return u, nil
}
