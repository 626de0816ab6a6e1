// Package extract implements the per-field extraction technique chains.
//
// Every field is extracted by an ordered list of pure techniques; the first
// technique producing a non-empty, in-range value wins and later techniques
// are not consulted. A chain with no winner is an absent value, never an
// error.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a parsed detail page so techniques share one DOM and one
// visible-text rendering.
type Document struct {
	doc  *goquery.Document
	base *url.URL
	text string
}

// NewDocument parses the fetched body. pageURL anchors relative links and
// lets the website extractor tell external hosts from the site's own.
func NewDocument(body []byte, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return &Document{doc: doc, base: base}, nil
}

// Text returns the page's visible text, computed once.
func (d *Document) Text() string {
	if d.text == "" {
		d.text = d.doc.Text()
	}
	return d.text
}

// eachScript visits every inline script body until fn returns false.
func (d *Document) eachScript(fn func(js string) bool) {
	d.doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		return fn(sel.Text())
	})
}

// technique is one attempt at producing a field value.
type technique[T any] func(d *Document) (T, bool)

// firstOf runs the chain in priority order and keeps the first hit.
func firstOf[T any](d *Document, chain ...technique[T]) (T, bool) {
	for _, attempt := range chain {
		if v, ok := attempt(d); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Extractor bundles the site-specific knobs the technique chains need.
type Extractor struct {
	// TitleSuffixes are trimmed from the <title> fallback for the name.
	TitleSuffixes []string
	// WebsiteDenylist holds hosts never accepted as an official website
	// (social networks, booking aggregators). Compared as host suffixes.
	WebsiteDenylist []string
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
