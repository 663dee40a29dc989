// Package page reads book landing pages and chapter detail pages.
//
// All knowledge of the platform's markup lives behind the Extractor
// interface, so a redesign of the site only touches one implementation.
package page

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page together with the URL it was served from,
// used to resolve relative links.
type Document struct {
	sel  *goquery.Document
	base *url.URL
}

// Parse parses body as HTML served from pageURL.
func Parse(body []byte, pageURL string) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("page url: %w", err)
	}
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{sel: goquery.NewDocumentFromNode(root), base: base}, nil
}

// Find runs a CSS selector against the document.
func (d *Document) Find(selector string) *goquery.Selection { return d.sel.Find(selector) }

// Resolve turns href into an absolute URL relative to the page.
func (d *Document) Resolve(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	u, err := d.base.Parse(href)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// ChapterLink is one table-of-contents entry as found on the landing page.
type ChapterLink struct {
	Title     string
	DetailURL string
}

// Extractor pulls individual fields out of platform pages. Methods return
// the zero value and false when a field is absent.
type Extractor interface {
	IsBookPage(d *Document) bool
	Title(d *Document) (string, bool)
	Year(d *Document) (int, bool)
	Authors(d *Document) []string
	Restricted(d *Document) bool
	WholeBookLink(d *Document) (string, bool)
	Chapters(d *Document) []ChapterLink
	ChapterAsset(d *Document) (string, bool)
}

// text returns the whitespace-collapsed text of the first match.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.First().Text()), " ")
}
