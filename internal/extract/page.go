// Package extract pulls venue, coach and player fields out of fetched pages.
//
// Every extractor is a pure function of the page body, its URL and a timestamp.
// Nothing here logs or touches the network.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a fetched body parsed once and shared by every extractor
type Page struct {
	Raw  string     // body as fetched, used by the pattern scans
	Root *html.Node // parsed tree, nil only if the body could not be tokenized
	doc  *goquery.Document
}

// ParsePage parses body into a Page. Malformed markup is repaired by the
// HTML5 parser, so a Page is always returned.
func ParsePage(body string) *Page {
	p := &Page{Raw: body}

	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	p.Root = root
	p.doc = goquery.NewDocumentFromNode(root)

	return p
}

// Anchor returns the value of the first element whose id is id.
// The value is the element's value attribute when it is not blank,
// otherwise its stripped text. Empty means the anchor is missing or empty.
func (p *Page) Anchor(id string) string {
	sel := p.doc.Find(`[id="` + id + `"]`).First()
	if sel.Length() == 0 {
		return ""
	}

	if val, ok := sel.Attr("value"); ok {
		if v := strings.TrimSpace(val); v != "" {
			return v
		}
	}
	return strippedText(sel.Nodes[0])
}

// MetaDescription returns the trimmed content of <meta name="description">
func (p *Page) MetaDescription() string {
	content, _ := p.doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// FirstText returns the stripped text of the first element matching tag and
// whether such an element exists at all
func (p *Page) FirstText(tag string) (string, bool) {
	sel := p.doc.Find(tag).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strippedText(sel.Nodes[0]), true
}

// strippedText joins every descendant text node of n after trimming each one
func strippedText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(strings.TrimSpace(node.Data))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
