package model

import (
	"errors"
	"fmt"
	"strings"
)

// Source records which CLI channel produced a reference.
type Source string

const (
	SourceArg  Source = "arg"
	SourceISBN Source = "isbn"
)

// BookReference is a validated, canonical pointer to one book page.
type BookReference struct {
	RawInput     string `yaml:"input"`
	CanonicalURL string `yaml:"url"`
	ISBN         string `yaml:"isbn"`
	Source       Source `yaml:"source,omitempty"`
}

// BookManifest is the resolved metadata and content location for one reference.
// When Authorized is true exactly one of Whole and Chapters is populated.
type BookManifest struct {
	Reference  BookReference
	Title      *string
	Year       *int
	ISBN       string
	Authors    []string
	Authorized bool
	Whole      *WholeBookAsset
	Chapters   []Chapter
}

// WholeBookAsset is a single file covering the entire book.
type WholeBookAsset struct {
	DownloadURL string
}

// Chapter is one table-of-contents entry. An empty DownloadURL means the
// detail page yielded no asset link; the fetch stage reports it.
type Chapter struct {
	Title       *string
	DetailURL   string
	DownloadURL string
}

// FetchResult is the outcome of fetching one asset.
type FetchResult struct {
	Reference BookReference
	Label     string
	Payload   []byte
	Err       error
}

// OK reports whether the fetch produced a payload.
func (r FetchResult) OK() bool { return r.Err == nil && len(r.Payload) > 0 }

// AssembledDocument is a merged PDF ready to be written.
type AssembledDocument struct {
	ISBN  string
	Title *string
	Year  *int
	Bytes []byte
	Parts int
}

// DisplayTitle returns the title or, when unknown, the ISBN.
func (m BookManifest) DisplayTitle() string {
	if m.Title != nil && strings.TrimSpace(*m.Title) != "" {
		return *m.Title
	}
	return m.ISBN
}

// String renders a short description used in status lines.
func (m BookManifest) String() string {
	year := "n.d."
	if m.Year != nil {
		year = fmt.Sprintf("%d", *m.Year)
	}
	s := fmt.Sprintf("'%s' (%s)", m.DisplayTitle(), year)
	if a := JoinAuthors(m.Authors); a != "" {
		s += "\n" + a
	}
	switch {
	case m.Whole != nil:
		s += " (complete book)"
	case len(m.Chapters) > 0:
		s += fmt.Sprintf(" (%d chapters)", len(m.Chapters))
	}
	return s
}

// Validate checks the manifest invariants.
func (m BookManifest) Validate() error {
	if strings.TrimSpace(m.ISBN) == "" {
		return errors.New("isbn is required")
	}
	if !m.Authorized {
		if m.Whole != nil || len(m.Chapters) > 0 {
			return errors.New("unauthorized manifest must not carry assets")
		}
		return nil
	}
	if m.Whole != nil && len(m.Chapters) > 0 {
		return errors.New("manifest carries both whole-book asset and chapters")
	}
	if m.Whole == nil && len(m.Chapters) == 0 {
		return fmt.Errorf("%w: no whole-book link and no chapters", ErrMissingAsset)
	}
	return nil
}

// JoinAuthors formats names as "A", "A and B" or "A, B et al.".
func JoinAuthors(names []string) string {
	var clean []string
	for _, n := range names {
		if n = strings.Join(strings.Fields(n), " "); n != "" {
			clean = append(clean, n)
		}
	}
	switch len(clean) {
	case 0:
		return ""
	case 1:
		return clean[0]
	case 2:
		return clean[0] + " and " + clean[1]
	default:
		return clean[0] + ", " + clean[1] + " et al."
	}
}
