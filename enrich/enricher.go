// Package enrich fills fields the selector cascades left empty using
// general-purpose article extractors.
package enrich

import (
	"fmt"
	"strings"

	"paperscrape/extractor"

	"go.uber.org/zap"
)

// Enricher is a downstream pass over an extracted record. Implementations
// only fill empty fields and never fail: extractor errors leave m unchanged.
type Enricher interface {
	Name() string
	Enrich(body []byte, pageURL string, m extractor.PaperMetadata) extractor.PaperMetadata
}

// Names lists the accepted values of New.
var Names = []string{"none", "readability", "trafilatura"}

// New returns the enricher registered under name.
func New(name string, logger *zap.Logger) (Enricher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None{}, nil
	case "readability":
		return NewReadability(logger), nil
	case "trafilatura":
		return NewTrafilatura(logger), nil
	default:
		return nil, fmt.Errorf("unknown enricher %q", name)
	}
}

type None struct{}

func (None) Name() string { return "none" }

func (None) Enrich(_ []byte, _ string, m extractor.PaperMetadata) extractor.PaperMetadata {
	return m
}

// fill sets *dst to v when *dst is empty.
func fill(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = strings.TrimSpace(v)
	}
}
