package extractor

const natureVenue = "Nature"

// Nature covers nature.com. The venue is fixed; the abstract prefers the
// description meta, which nature.com fills with the article summary.
type Nature struct{}

func (Nature) Site() Site { return SiteNature }

func (Nature) Extract(doc Document) PaperMetadata {
	return PaperMetadata{
		Title: FirstOf(doc,
			Meta("citation_title"),
			Text("h1.c-article-title"),
		),
		Authors: Authors(doc, citationAuthors),
		Year:    FirstOf(doc, Year(Meta("citation_publication_date"))),
		Abstract: FirstOf(doc,
			Meta("description"),
			Text("#Abs1-content"),
		),
		DOI:          FirstOf(doc, Meta("citation_doi")),
		Venue:        natureVenue,
		Type:         publisherType(doc),
		PeerReviewed: true,
	}
}
