package extractor

import (
	"strings"
	"unicode/utf8"
)

const (
	// maxDOMAuthors caps the class-name author heuristic.
	maxDOMAuthors = 10
	// maxDOMAuthorLen rejects author candidates that are really UI text.
	maxDOMAuthorLen = 100
)

const (
	domAuthorSelector   = `.author, .authors a, [class*="author"]`
	domAbstractSelector = `abstract, .abstract, #abstract, [class*="abstract"]`
	doiLinkSelector     = `a[href*="doi.org"]`
)

// Generic is the fallback for hosts without a dedicated profile. It reads
// the citation_*, Dublin Core and OpenGraph conventions and guesses type and
// peer review from the page text.
type Generic struct{}

func (Generic) Site() Site { return SiteGeneric }

func (Generic) Extract(doc Document) PaperMetadata {
	bodyText := strings.ToLower(doc.BodyText())

	return PaperMetadata{
		Title: FirstOf(doc,
			Property("og:title"),
			Meta("citation_title"),
			Meta("dc.title"),
			Text("h1"),
			DocumentTitle(),
		),
		Authors: Authors(doc,
			AuthorMetas("citation_author", "dc.creator", "author"),
			domAuthors,
		),
		Year: FirstOf(doc,
			Year(Meta("citation_publication_date")),
			Year(Meta("citation_year")),
			Year(Meta("dc.date")),
			Year(Property("article:published_time")),
		),
		Abstract: FirstOf(doc,
			Property("og:description"),
			Meta("citation_abstract"),
			Meta("dc.description"),
			Meta("description"),
			Text(domAbstractSelector),
		),
		DOI: FirstOf(doc,
			Meta("citation_doi"),
			Clean(Meta("dc.identifier"), FindDOI),
			doiFromLinks,
		),
		Venue: FirstOf(doc,
			Meta("citation_journal_title"),
			Meta("citation_conference_title"),
			Meta("dc.publisher"),
			Meta("citation_publisher"),
		),
		Type:         genericType(doc, bodyText),
		PeerReviewed: genericPeerReviewed(doc, bodyText),
	}
}

// domAuthors looks at the first few elements whose class mentions "author".
func domAuthors(doc Document) []string {
	nodes := doc.All(domAuthorSelector)
	if len(nodes) > maxDOMAuthors {
		nodes = nodes[:maxDOMAuthors]
	}
	var names []string
	for _, n := range nodes {
		text := CollapseSpaces(n.Text())
		if l := utf8.RuneCountInString(text); l > 0 && l < maxDOMAuthorLen {
			names = append(names, text)
		}
	}
	return names
}

func doiFromLinks(doc Document) string {
	for _, n := range doc.All(doiLinkSelector) {
		href, _ := n.Attr("href")
		if doi := FindDOI(href); doi != "" {
			return doi
		}
	}
	return ""
}

func genericPeerReviewed(doc Document, bodyText string) bool {
	return strings.Contains(bodyText, "peer review") ||
		strings.Contains(bodyText, "peer-review") ||
		HasMeta(doc, "citation_journal_title")
}

// genericType checks conference before journal: proceedings pages often
// carry both tags.
func genericType(doc Document, bodyText string) PaperType {
	switch {
	case HasMeta(doc, "citation_conference_title"):
		return TypeConferencePaper
	case HasMeta(doc, "citation_journal_title"):
		return TypeJournal
	case strings.Contains(bodyText, "preprint"):
		return TypePreprint
	default:
		return TypeArticle
	}
}
