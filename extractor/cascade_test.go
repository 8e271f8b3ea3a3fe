package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstOf(t *testing.T) {
	doc := parse(t, `<html><head>
<title>Page title</title>
<meta name="empty" content="">
<meta name="blank" content="   ">
<meta name="filled" content=" value ">
</head><body><h1> Heading </h1></body></html>`)

	tests := []struct {
		name       string
		candidates []Candidate
		want       string
	}{
		{"no candidates", nil, ""},
		{"missing meta falls through", []Candidate{Meta("missing"), Meta("filled")}, "value"},
		{"empty content is a miss", []Candidate{Meta("empty"), Text("h1")}, "Heading"},
		{"whitespace content is a miss", []Candidate{Meta("blank"), DocumentTitle()}, "Page title"},
		{"first hit wins", []Candidate{Text("h1"), Meta("filled")}, "Heading"},
		{"all miss", []Candidate{Meta("missing"), Text("h2"), Attr("a", "href")}, ""},
		{"const", []Candidate{Meta("missing"), Const("fixed")}, "fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstOf(doc, tt.candidates...))
		})
	}
}

func TestFirstOf_ShortCircuits(t *testing.T) {
	doc := parse(t, `<html><head><meta name="a" content="x"></head></html>`)

	called := false
	probe := func(Document) string {
		called = true
		return "y"
	}
	assert.Equal(t, "x", FirstOf(doc, Meta("a"), probe))
	assert.False(t, called)
}

func TestMetaValues_DocumentOrderAcrossNames(t *testing.T) {
	doc := parse(t, `<html><head>
<meta name="author" content="Third">
<meta name="citation_author" content="First">
<meta name="dc.creator" content="Second">
<meta name="citation_author" content="">
<meta name="citation_author" content="First">
</head></html>`)

	got := MetaValues(doc, "citation_author", "dc.creator", "author")
	assert.Equal(t, []string{"Third", "First", "Second", "First"}, got)
}

func TestAuthors_FallsBackToNextSource(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="authors"><a>Grace Hopper</a> <a> Alan
 Turing </a></div>
</body></html>`)

	got := Authors(doc, AuthorMetas("citation_author"), AuthorNodes(".authors a"))
	assert.Equal(t, "Grace Hopper, Alan Turing", got)
}

func TestHasMeta_IgnoresContent(t *testing.T) {
	doc := parse(t, `<html><head><meta name="citation_journal_title" content=""></head></html>`)

	assert.True(t, HasMeta(doc, "citation_journal_title"))
	assert.False(t, HasMeta(doc, "citation_conference_title"))
}
