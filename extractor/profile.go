package extractor

// Site identifies one extraction profile.
type Site string

const (
	SiteScienceDirect Site = "sciencedirect"
	SiteIEEE          Site = "ieee"
	SiteSpringer      Site = "springer"
	SiteNature        Site = "nature"
	SiteArxiv         Site = "arxiv"
	SiteGeneric       Site = "generic"
)

// Profile extracts a partial record from a document. Link, defaults and
// truncation are applied afterwards by Normalize.
type Profile interface {
	Site() Site
	Extract(doc Document) PaperMetadata
}

// publisherType is shared by the peer-reviewed publisher profiles: a
// journal-title meta makes the paper a Journal, otherwise an Article.
func publisherType(doc Document) PaperType {
	if HasMeta(doc, "citation_journal_title") {
		return TypeJournal
	}
	return TypeArticle
}

// citationAuthors is the author list of the publisher profiles.
var citationAuthors = AuthorMetas("citation_author")
