package extractor

// IEEE covers ieeexplore.ieee.org document pages. Xplore builds most of its
// visible DOM with scripts, so the DOM fallbacks only match rendered pages.
type IEEE struct{}

func (IEEE) Site() Site { return SiteIEEE }

func (IEEE) Extract(doc Document) PaperMetadata {
	return PaperMetadata{
		Title: FirstOf(doc,
			Property("og:title"),
			Text("h1.document-title"),
		),
		Authors: Authors(doc, citationAuthors),
		Year: FirstOf(doc,
			Year(Meta("citation_publication_date")),
			Year(Text(".doc-abstract-pubdate")),
		),
		Abstract: FirstOf(doc,
			Meta("citation_abstract"),
			Text(".abstract-text"),
		),
		DOI: FirstOf(doc, Meta("citation_doi")),
		// Conference proceedings carry both tags; the conference name wins.
		Venue: FirstOf(doc,
			Meta("citation_conference_title"),
			Meta("citation_journal_title"),
			Text(".pub-title"),
		),
		Type:         publisherType(doc),
		PeerReviewed: true,
	}
}
