package resolver

import (
	"context"
	"fmt"
	"strings"

	"elibrary/src/internal/httpx"
	"elibrary/src/internal/logger"
	"elibrary/src/internal/model"
	"elibrary/src/internal/page"
)

// YearLookup supplies a publication year when the page shows none.
type YearLookup func(ctx context.Context, isbn string) (int, error)

// Resolver turns a BookReference into a BookManifest by scraping the
// landing page and, for chapter books, each chapter's detail page.
type Resolver struct {
	client     httpx.Doer
	extractor  page.Extractor
	yearLookup YearLookup
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithYearLookup enables a metadata fallback for the publication year.
func WithYearLookup(f YearLookup) Option { return func(r *Resolver) { r.yearLookup = f } }

// New returns a Resolver. A nil extractor selects page.Hanser.
func New(c httpx.Doer, x page.Extractor, opts ...Option) *Resolver {
	if x == nil {
		x = page.Hanser{}
	}
	r := &Resolver{client: c, extractor: x}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve fetches the landing page of ref and extracts its manifest. An
// unauthorized book yields Authorized=false and a nil error; no further
// requests are made for it.
func (r *Resolver) Resolve(ctx context.Context, ref model.BookReference) (model.BookManifest, error) {
	doc, err := r.load(ctx, ref.CanonicalURL)
	if err != nil {
		return model.BookManifest{}, err
	}
	if !r.extractor.IsBookPage(doc) {
		return model.BookManifest{}, fmt.Errorf("%w: %s is not a book page", model.ErrPageStructure, ref.CanonicalURL)
	}

	m := model.BookManifest{Reference: ref, ISBN: ref.ISBN}
	if t, ok := r.extractor.Title(doc); ok {
		m.Title = &t
	}
	if y, ok := r.extractor.Year(doc); ok {
		m.Year = &y
	}
	m.Authors = r.extractor.Authors(doc)

	if r.extractor.Restricted(doc) {
		return m, nil
	}
	m.Authorized = true

	if m.Year == nil && r.yearLookup != nil {
		if y, err := r.yearLookup(ctx, ref.ISBN); err == nil && y > 0 {
			m.Year = &y
		} else if err != nil {
			logger.Debug("year lookup for %s: %v", ref.ISBN, err)
		}
	}

	if link, ok := r.extractor.WholeBookLink(doc); ok {
		m.Whole = &model.WholeBookAsset{DownloadURL: link}
		return m, nil
	}

	for i, c := range r.extractor.Chapters(doc) {
		ch := model.Chapter{DetailURL: c.DetailURL}
		if c.Title != "" {
			t := c.Title
			ch.Title = &t
		}
		if c.DetailURL != "" {
			ch.DownloadURL = r.chapterAsset(ctx, c.DetailURL)
		}
		if ch.DownloadURL == "" {
			logger.Debug("chapter %d of %s has no asset link", i+1, ref.ISBN)
		}
		m.Chapters = append(m.Chapters, ch)
	}
	if len(m.Chapters) == 0 {
		return model.BookManifest{}, fmt.Errorf("%w: %s lists neither a book download nor chapters", model.ErrMissingAsset, ref.CanonicalURL)
	}
	return m, nil
}

func (r *Resolver) load(ctx context.Context, u string) (*page.Document, error) {
	resp, err := httpx.Get(ctx, r.client, u, nil, "text/html")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrFetch, u, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s returned %d", model.ErrPageStructure, u, resp.Status)
	}
	if mt := resp.MediaType(); mt != "" && !strings.Contains(mt, "html") {
		return nil, fmt.Errorf("%w: %s sent %s, not html", model.ErrPageStructure, u, mt)
	}
	doc, err := page.Parse(resp.Body, resp.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrPageStructure, u, err)
	}
	return doc, nil
}

// chapterAsset follows a chapter's detail link to its PDF link. Failures
// yield "" so the chapter keeps its slot and the fetch stage reports it.
func (r *Resolver) chapterAsset(ctx context.Context, detailURL string) string {
	doc, err := r.load(ctx, detailURL)
	if err != nil {
		logger.Debug("chapter detail %s: %v", detailURL, err)
		return ""
	}
	u, _ := r.extractor.ChapterAsset(doc)
	return u
}
