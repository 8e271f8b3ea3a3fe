package extractor

// Springer covers link.springer.com chapters and articles.
type Springer struct{}

func (Springer) Site() Site { return SiteSpringer }

func (Springer) Extract(doc Document) PaperMetadata {
	return PaperMetadata{
		Title: FirstOf(doc,
			Meta("citation_title"),
			Text("h1.c-article-title"),
		),
		Authors: Authors(doc, citationAuthors),
		Year: FirstOf(doc,
			Year(Meta("citation_publication_date")),
			Year(Text(".c-bibliographic-information__value")),
		),
		Abstract: FirstOf(doc,
			Meta("citation_abstract"),
			Text("#Abs1-content"),
		),
		DOI: FirstOf(doc, Meta("citation_doi")),
		Venue: FirstOf(doc,
			Meta("citation_journal_title"),
			Text(".c-article-info-details"),
		),
		Type:         publisherType(doc),
		PeerReviewed: true,
	}
}
