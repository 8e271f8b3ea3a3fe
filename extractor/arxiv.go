package extractor

import "strings"

const (
	arxivVenue = "arXiv (Preprint)"
	// arxivDOIPrefix is the DataCite prefix arXiv registers its DOIs under.
	arxivDOIPrefix = "10.48550/arXiv."
)

// Arxiv covers arxiv.org abstract pages. Everything on arXiv is a preprint,
// so type and peer review are fixed regardless of what the page says.
type Arxiv struct{}

func (Arxiv) Site() Site { return SiteArxiv }

func (Arxiv) Extract(doc Document) PaperMetadata {
	return PaperMetadata{
		Title: FirstOf(doc,
			Clean(Meta("citation_title"), stripLabel("Title:")),
			Clean(Text("h1.title"), stripLabel("Title:")),
		),
		// The visible list reads "First Last"; the citation metas read
		// "Last, First", which would be ambiguous once comma-joined.
		Authors: Authors(doc,
			AuthorNodes(".authors a"),
			AuthorMetas("citation_author"),
		),
		Year: FirstOf(doc,
			Year(Text(".dateline")),
			Year(Meta("citation_date")),
			Year(Meta("citation_online_date")),
		),
		Abstract: FirstOf(doc,
			Clean(Text(".abstract"), stripLabel("Abstract:")),
			Clean(Meta("citation_abstract"), stripLabel("Abstract:")),
		),
		DOI: FirstOf(doc,
			Meta("citation_doi"),
			Clean(Meta("citation_arxiv_id"), arxivDOI),
		),
		Venue:        arxivVenue,
		Type:         TypePreprint,
		PeerReviewed: false,
	}
}

// stripLabel removes a literal leading label and the whitespace around it.
func stripLabel(label string) CleanFunc {
	return func(s string) string {
		return CleanString(s, strings.TrimSpace, RemovePrefix(label), strings.TrimSpace)
	}
}

func arxivDOI(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return arxivDOIPrefix + id
}
