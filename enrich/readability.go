package enrich

import (
	"bytes"
	"net/url"

	"paperscrape/extractor"

	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

type Readability struct {
	logger *zap.Logger
}

func NewReadability(logger *zap.Logger) *Readability {
	return &Readability{logger: logger}
}

func (*Readability) Name() string { return "readability" }

func (r *Readability) Enrich(body []byte, pageURL string, m extractor.PaperMetadata) extractor.PaperMetadata {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		r.logger.Warn("readability: failed to parse URL", zap.String("url", pageURL), zap.Error(err))
		return m
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		r.logger.Warn("readability: extraction failed", zap.String("url", pageURL), zap.Error(err))
		return m
	}

	r.logger.Debug("readability_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", article.Title),
		zap.String("byline", article.Byline),
		zap.String("site_name", article.SiteName))

	fill(&m.Title, article.Title)
	fill(&m.Authors, article.Byline)
	fill(&m.Abstract, article.Excerpt)
	fill(&m.Venue, article.SiteName)
	return extractor.Normalize(m, m.Link)
}
