// Package extractor turns academic publisher pages into bibliographic records.
//
// A hostname picks one of a fixed, ordered set of site profiles (or the
// generic fallback). Each profile runs a cascade of meta-tag and DOM selectors
// per field, and a shared normalization pass fills defaults and truncates.
package extractor

// PaperType classifies a scraped paper.
type PaperType string

const (
	TypeArticle         PaperType = "Article"
	TypeJournal         PaperType = "Journal"
	TypeConferencePaper PaperType = "Conference Paper"
	TypePreprint        PaperType = "Preprint"
)

// PaperMetadata is the record produced by one extraction.
type PaperMetadata struct {
	Title        string    `json:"title"`
	Authors      string    `json:"authors"` // ", "-joined, document order
	Year         string    `json:"year"`
	Link         string    `json:"link"`
	Abstract     string    `json:"abstract"`
	DOI          string    `json:"doi"`
	Venue        string    `json:"venue"`
	Citations    int       `json:"citations"` // never scraped, left for enrichment
	Type         PaperType `json:"type"`
	PeerReviewed bool      `json:"peerReviewed"`
}

// MaxAbstractLen is the abstract length limit in characters.
const MaxAbstractLen = 1000

const ellipsis = "..."
