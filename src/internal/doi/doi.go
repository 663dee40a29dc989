package doi

import (
	"regexp"
	"strings"
)

// rePrefix matches the registrant part of a DOI ("10.3139").
var rePrefix = regexp.MustCompile(`^10\.\d{4,9}$`)

// reSuffix accepts the Crossref-recommended suffix alphabet.
var reSuffix = regexp.MustCompile(`(?i)^[-._;()/:A-Z0-9]+$`)

// Split separates a DOI into prefix and suffix at the first slash.
func Split(doi string) (prefix, suffix string, ok bool) {
	doi = strings.TrimSpace(doi)
	i := strings.IndexByte(doi, '/')
	if i <= 0 || i == len(doi)-1 {
		return "", "", false
	}
	return doi[:i], doi[i+1:], true
}

// Valid reports whether s is a syntactically valid DOI.
func Valid(s string) bool {
	p, sfx, ok := Split(s)
	if !ok {
		return false
	}
	return rePrefix.MatchString(p) && reSuffix.MatchString(sfx)
}

// FromBookPath extracts the DOI and trailing identifier from path elements of
// the form doi/book/<prefix>/<suffix>. The suffix doubles as the book's ISBN
// on the platform.
func FromBookPath(elems []string) (doi, tail string, ok bool) {
	if len(elems) != 4 || !strings.EqualFold(elems[0], "doi") || !strings.EqualFold(elems[1], "book") {
		return "", "", false
	}
	doi = elems[2] + "/" + elems[3]
	if !Valid(doi) {
		return "", "", false
	}
	return doi, elems[3], true
}
