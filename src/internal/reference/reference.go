package reference

import (
	"fmt"
	"net/url"
	"strings"

	"elibrary/src/internal/doi"
	"elibrary/src/internal/isbn"
	"elibrary/src/internal/model"
)

// DefaultBaseURL is the platform root every canonical reference points at.
const DefaultBaseURL = "https://www.hanser-elibrary.com"

// Policy selects how duplicates are detected across a batch.
type Policy string

const (
	// PolicyExact treats only identical canonical URLs as duplicates.
	PolicyExact Policy = "exact"
	// PolicyEdition additionally treats the ISBN-10 and ISBN-13 forms of the
	// same edition as duplicates.
	PolicyEdition Policy = "edition"
)

// ParsePolicy maps a flag value to a Policy; empty selects PolicyExact.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyExact:
		return PolicyExact, nil
	case PolicyEdition:
		return PolicyEdition, nil
	}
	return "", fmt.Errorf("unknown dedupe policy %q (want exact or edition)", s)
}

// Input is one raw CLI token together with the channel it came from.
type Input struct {
	Raw    string
	Source model.Source
}

// Rejected records a token that did not become a reference.
type Rejected struct {
	Input Input
	Err   error
}

// Normalizer turns raw tokens into canonical references.
type Normalizer struct {
	base   *url.URL
	policy Policy
}

// New returns a Normalizer rooted at base (DefaultBaseURL when empty).
func New(base string, policy Policy) (*Normalizer, error) {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(base), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", base)
	}
	if policy == "" {
		policy = PolicyExact
	}
	return &Normalizer{base: u, policy: policy}, nil
}

// Parse validates one token. Tokens without a slash are bare ISBN candidates;
// everything else must be a platform URL of the form .../isbn/{ISBN} or
// .../doi/book/{DOI}/{ISBN}.
func (n *Normalizer) Parse(raw string, src model.Source) (model.BookReference, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.BookReference{}, fmt.Errorf("%w: empty token", model.ErrInvalidReference)
	}
	if !strings.Contains(s, "/") {
		return n.parseBare(raw, s, src)
	}
	return n.parseURL(raw, s, src)
}

func (n *Normalizer) parseBare(raw, s string, src model.Source) (model.BookReference, error) {
	id := isbn.Clean(s)
	if !isbn.Valid(id) {
		return model.BookReference{}, fmt.Errorf("%w: %q is neither a book url nor a valid ISBN", model.ErrInvalidReference, raw)
	}
	return model.BookReference{
		RawInput:     raw,
		CanonicalURL: n.canonical("isbn", id),
		ISBN:         id,
		Source:       src,
	}, nil
}

func (n *Normalizer) parseURL(raw, s string, src model.Source) (model.BookReference, error) {
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return model.BookReference{}, fmt.Errorf("%w: %q: %v", model.ErrInvalidReference, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return model.BookReference{}, fmt.Errorf("%w: %q: unsupported scheme %q", model.ErrInvalidReference, raw, u.Scheme)
	}
	if bareHost(u.Host) != bareHost(n.base.Host) {
		return model.BookReference{}, fmt.Errorf("%w: %q: invalid location %q", model.ErrInvalidReference, raw, u.Host)
	}
	var elems []string
	for _, e := range strings.Split(u.Path, "/") {
		if e != "" {
			elems = append(elems, e)
		}
	}
	switch {
	case len(elems) == 2 && strings.EqualFold(elems[0], "isbn"):
		id := isbn.Clean(elems[1])
		if !isbn.Valid(id) {
			return model.BookReference{}, fmt.Errorf("%w: %q: url end %s has an invalid ISBN checksum", model.ErrInvalidReference, raw, elems[1])
		}
		return model.BookReference{RawInput: raw, CanonicalURL: n.canonical("isbn", id), ISBN: id, Source: src}, nil
	case len(elems) == 4:
		d, tail, ok := doi.FromBookPath(elems)
		if !ok {
			return model.BookReference{}, fmt.Errorf("%w: %q: path must start with 'doi/book/<DOI>'", model.ErrInvalidReference, raw)
		}
		if !isbn.Valid13(tail) {
			return model.BookReference{}, fmt.Errorf("%w: %q: url end %s has an invalid ISBN-13 checksum", model.ErrInvalidReference, raw, tail)
		}
		p, sfx, _ := doi.Split(d)
		return model.BookReference{RawInput: raw, CanonicalURL: n.canonical("doi", "book", p, sfx), ISBN: tail, Source: src}, nil
	}
	return model.BookReference{}, fmt.Errorf("%w: %q: unrecognized path %q", model.ErrInvalidReference, raw, strings.Join(elems, "/"))
}

// Normalize parses every input in order, drops duplicates per the policy
// (first occurrence wins) and reports every token that was not kept.
func (n *Normalizer) Normalize(inputs []Input) ([]model.BookReference, []Rejected) {
	var (
		refs     []model.BookReference
		rejected []Rejected
	)
	seen := map[string]model.BookReference{}
	for _, in := range inputs {
		ref, err := n.Parse(in.Raw, in.Source)
		if err != nil {
			rejected = append(rejected, Rejected{Input: in, Err: err})
			continue
		}
		key := n.key(ref)
		if first, dup := seen[key]; dup {
			rejected = append(rejected, Rejected{
				Input: in,
				Err:   fmt.Errorf("%w: %q same as %q", model.ErrDuplicateReference, in.Raw, first.RawInput),
			})
			continue
		}
		seen[key] = ref
		refs = append(refs, ref)
	}
	return refs, rejected
}

func (n *Normalizer) key(ref model.BookReference) string {
	if n.policy == PolicyEdition {
		if k := isbn.To13(ref.ISBN); k != "" {
			return "isbn:" + k
		}
	}
	return ref.CanonicalURL
}

func (n *Normalizer) canonical(elems ...string) string {
	u := url.URL{Scheme: n.base.Scheme, Host: n.base.Host, Path: n.base.Path + "/" + strings.Join(elems, "/")}
	return u.String()
}

func bareHost(h string) string {
	h = strings.ToLower(h)
	return strings.TrimPrefix(h, "www.")
}
