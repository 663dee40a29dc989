package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"elibrary/src/internal/dates"
)

// Selectors for hanser-elibrary.com book pages.
const (
	selTitle       = "h1.current-issue__title"
	selOGTitle     = `meta[property="og:title"]`
	selDate        = ".cover-date, .current-issue__date"
	selMetaDate    = `meta[name="dc.Date"]`
	selAuthors     = "span.hlFld-ContribAuthor"
	selLock        = "i.icon-lock"
	selWholeBook   = `a.book-download[href], .book-download a[href], a[data-download="book"][href]`
	selTOCEntry    = "div.issue-item__content"
	selTOCTitle    = ".issue-item__title"
	selTOCLink     = ".issue-item__title a[href]"
	selAssetPDF    = `a[title="PDF"][href]`
	selAssetDOIPDF = `a[href*="/doi/pdf/"]`
)

// Hanser implements Extractor for hanser-elibrary.com.
type Hanser struct{}

var _ Extractor = Hanser{}

// IsBookPage reports whether the page carries a title heading or a table
// of contents.
func (Hanser) IsBookPage(d *Document) bool {
	return d.Find(selTitle).Length() > 0 || d.Find(selTOCEntry).Length() > 0
}

// Title reads the book heading, falling back to og:title.
func (Hanser) Title(d *Document) (string, bool) {
	if t := text(d.Find(selTitle)); t != "" {
		return t, true
	}
	if c, ok := d.Find(selOGTitle).First().Attr("content"); ok {
		if t := strings.Join(strings.Fields(c), " "); t != "" {
			return t, true
		}
	}
	return "", false
}

// Year takes the first year shown in the cover date, then dc.Date.
func (Hanser) Year(d *Document) (int, bool) {
	var year int
	d.Find(selDate).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		year = dates.ExtractYear(s.Text())
		return year == 0
	})
	if year == 0 {
		if c, ok := d.Find(selMetaDate).First().Attr("content"); ok {
			year = dates.ExtractYear(c)
		}
	}
	return year, year > 0
}

// Authors lists contributor names in page order.
func (Hanser) Authors(d *Document) []string {
	var out []string
	d.Find(selAuthors).Each(func(_ int, s *goquery.Selection) {
		if n := strings.Join(strings.Fields(s.Text()), " "); n != "" {
			out = append(out, n)
		}
	})
	return out
}

// Restricted reports the no-access lock icon.
func (Hanser) Restricted(d *Document) bool { return d.Find(selLock).Length() > 0 }

// WholeBookLink returns the single-file download link, if the book has one.
func (Hanser) WholeBookLink(d *Document) (string, bool) {
	href, ok := d.Find(selWholeBook).First().Attr("href")
	if !ok {
		return "", false
	}
	return d.Resolve(href)
}

// Chapters returns the table of contents in page order. Entries without a
// detail link are kept with an empty DetailURL.
func (Hanser) Chapters(d *Document) []ChapterLink {
	var out []ChapterLink
	d.Find(selTOCEntry).Each(func(_ int, s *goquery.Selection) {
		c := ChapterLink{Title: text(s.Find(selTOCTitle))}
		if href, ok := s.Find(selTOCLink).First().Attr("href"); ok {
			c.DetailURL, _ = d.Resolve(href)
		}
		out = append(out, c)
	})
	return out
}

// ChapterAsset finds the PDF link on a chapter detail page.
func (Hanser) ChapterAsset(d *Document) (string, bool) {
	for _, sel := range []string{selAssetPDF, selAssetDOIPDF} {
		if href, ok := d.Find(sel).First().Attr("href"); ok {
			if u, ok := d.Resolve(href); ok {
				return u, true
			}
		}
	}
	return "", false
}
