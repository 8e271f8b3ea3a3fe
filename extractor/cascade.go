package extractor

import (
	"fmt"
	"strings"
)

// Candidate produces one possible value for a field. "" means a miss.
type Candidate func(Document) string

// FirstOf evaluates candidates left to right and returns the first value
// that is non-empty after trimming.
func FirstOf(doc Document, candidates ...Candidate) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(c(doc)); v != "" {
			return v
		}
	}
	return ""
}

func metaByName(name string) string {
	return fmt.Sprintf(`meta[name="%s"]`, name)
}

func metaByProperty(property string) string {
	return fmt.Sprintf(`meta[property="%s"]`, property)
}

// Attr reads attr from the first node matching selector.
func Attr(selector, attr string) Candidate {
	return func(doc Document) string {
		n := doc.First(selector)
		if n == nil {
			return ""
		}
		v, _ := n.Attr(attr)
		return v
	}
}

// Meta reads the content of <meta name="...">.
func Meta(name string) Candidate {
	return Attr(metaByName(name), "content")
}

// Property reads the content of <meta property="...">, the OpenGraph form.
func Property(property string) Candidate {
	return Attr(metaByProperty(property), "content")
}

// Text reads the trimmed text of the first node matching selector.
func Text(selector string) Candidate {
	return func(doc Document) string {
		n := doc.First(selector)
		if n == nil {
			return ""
		}
		return n.Text()
	}
}

// DocumentTitle reads the page <title>.
func DocumentTitle() Candidate {
	return func(doc Document) string { return doc.Title() }
}

// Const always yields v.
func Const(v string) Candidate {
	return func(Document) string { return v }
}

// Clean post-processes the value of c.
func Clean(c Candidate, cleanFuncs ...CleanFunc) Candidate {
	return func(doc Document) string {
		return CleanString(c(doc), cleanFuncs...)
	}
}

// Year reduces the value of c to its first four-digit run.
func Year(c Candidate) Candidate {
	return Clean(c, FirstYear)
}

// HasMeta reports whether a <meta name="..."> element exists, regardless of
// its content.
func HasMeta(doc Document, name string) bool {
	return doc.First(metaByName(name)) != nil
}

// MetaValues collects the content of every <meta> whose name is one of
// names, in document order. Empty contents are skipped.
func MetaValues(doc Document, names ...string) []string {
	selectors := make([]string, len(names))
	for i, name := range names {
		selectors[i] = metaByName(name)
	}
	var values []string
	for _, n := range doc.All(strings.Join(selectors, ", ")) {
		v, _ := n.Attr("content")
		if v = CollapseSpaces(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// TextValues collects the trimmed text of every node matching selector, in
// document order. Empty texts are skipped.
func TextValues(doc Document, selector string) []string {
	var values []string
	for _, n := range doc.All(selector) {
		if v := CollapseSpaces(n.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Authors joins the first non-empty author list produced by sources.
func Authors(doc Document, sources ...func(Document) []string) string {
	for _, src := range sources {
		if names := src(doc); len(names) > 0 {
			return JoinAuthors(names)
		}
	}
	return ""
}

// AuthorMetas is an author source over <meta name="..."> tags.
func AuthorMetas(names ...string) func(Document) []string {
	return func(doc Document) []string { return MetaValues(doc, names...) }
}

// AuthorNodes is an author source over visible elements.
func AuthorNodes(selector string) func(Document) []string {
	return func(doc Document) []string { return TextValues(doc, selector) }
}
