package enrich

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"

	"paperscrape/extractor"

	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
)

type Trafilatura struct {
	logger *zap.Logger
}

func NewTrafilatura(logger *zap.Logger) *Trafilatura {
	return &Trafilatura{logger: logger}
}

func (*Trafilatura) Name() string { return "trafilatura" }

func (t *Trafilatura) Enrich(body []byte, pageURL string, m extractor.PaperMetadata) extractor.PaperMetadata {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		t.logger.Warn("trafilatura: failed to parse URL", zap.String("url", pageURL), zap.Error(err))
		return m
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsedURL,
	})
	if err != nil {
		t.logger.Warn("trafilatura: extraction failed", zap.String("url", pageURL), zap.Error(err))
		return m
	}

	meta := result.Metadata
	t.logger.Debug("trafilatura_extraction_result",
		zap.String("url", pageURL),
		zap.String("title", meta.Title),
		zap.String("author", meta.Author),
		zap.String("sitename", meta.Sitename),
		zap.Time("date", meta.Date))

	fill(&m.Title, meta.Title)
	// trafilatura joins multiple authors with "; ".
	fill(&m.Authors, strings.ReplaceAll(meta.Author, "; ", ", "))
	if !meta.Date.IsZero() {
		fill(&m.Year, strconv.Itoa(meta.Date.Year()))
	}
	fill(&m.Venue, meta.Sitename)
	fill(&m.Abstract, meta.Description)
	return extractor.Normalize(m, m.Link)
}
