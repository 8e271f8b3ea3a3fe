package extractor

// ScienceDirect covers Elsevier's sciencedirect.com article pages.
type ScienceDirect struct{}

func (ScienceDirect) Site() Site { return SiteScienceDirect }

func (ScienceDirect) Extract(doc Document) PaperMetadata {
	return PaperMetadata{
		Title: FirstOf(doc,
			Meta("citation_title"),
			Text("h1.title-text"),
			Text("span.title-text"),
		),
		Authors: Authors(doc, citationAuthors),
		Year: FirstOf(doc,
			Year(Meta("citation_publication_date")),
			Year(Text(".publication-volume")),
		),
		Abstract: FirstOf(doc,
			Meta("citation_abstract"),
			Text("#abstracts .abstract"),
		),
		DOI: FirstOf(doc, Meta("citation_doi")),
		Venue: FirstOf(doc,
			Meta("citation_journal_title"),
			Text(".publication-title"),
		),
		Type:         publisherType(doc),
		PeerReviewed: true,
	}
}
