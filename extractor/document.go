package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is the read-only query surface profiles run against.
type Document interface {
	// First returns the first node matching selector, or nil.
	First(selector string) Node
	// All returns every node matching selector in document order.
	All(selector string) []Node
	// Title returns the text of the document's <title>.
	Title() string
	// BodyText returns the whole visible text of the page.
	BodyText() string
}

// Node is a single matched element.
type Node interface {
	Attr(name string) (string, bool)
	// Text returns the trimmed text content of the element.
	Text() string
}

// GoQueryDocument adapts a goquery document to Document.
type GoQueryDocument struct {
	doc *goquery.Document
}

func NewDocument(doc *goquery.Document) *GoQueryDocument {
	return &GoQueryDocument{doc: doc}
}

// ParseHTML reads an HTML page into a Document.
func ParseHTML(r io.Reader) (*GoQueryDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewDocument(doc), nil
}

func (d *GoQueryDocument) First(selector string) Node {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &goQueryNode{sel: sel}
}

func (d *GoQueryDocument) All(selector string) []Node {
	sel := d.doc.Find(selector)
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		nodes = append(nodes, &goQueryNode{sel: s})
	})
	return nodes
}

func (d *GoQueryDocument) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

func (d *GoQueryDocument) BodyText() string {
	return d.doc.Find("body").Text()
}

type goQueryNode struct {
	sel *goquery.Selection
}

func (n *goQueryNode) Attr(name string) (string, bool) { return n.sel.Attr(name) }

func (n *goQueryNode) Text() string { return strings.TrimSpace(n.sel.Text()) }
