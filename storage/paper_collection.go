package storage

import (
	"context"
	"errors"
	"time"

	"paperscrape/extractor"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists for a URL.
var ErrNotFound = errors.New("paper not found")

type PaperRepository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, url string) (*Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Delete(ctx context.Context, url string) error
}

// Record is one scraped page.
type Record struct {
	ID        string                  `json:"id"`
	URL       string                  `json:"url"`
	Site      extractor.Site          `json:"site"`
	Metadata  extractor.PaperMetadata `json:"metadata"`
	ScrapedAt time.Time               `json:"scraped_at"`
}

// RecordID is the stable key of url: re-scraping a page replaces its record.
func RecordID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}
