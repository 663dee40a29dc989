package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"elibrary/src/internal/httpx"
	"elibrary/src/internal/model"
)

const pdfType = "application/pdf"

// ProgressFunc is called after each unit with the number of units done so
// far, the total and the label of the unit just finished.
type ProgressFunc func(done, total int, label string)

// Fetcher downloads the assets named by a manifest.
type Fetcher struct {
	Client   httpx.Doer
	Progress ProgressFunc
}

// Fetch retrieves every asset of m in manifest order. One FetchResult is
// returned per unit; a failed unit carries Err and never stops the rest.
// Manifests that are not authorized produce no requests.
func (f *Fetcher) Fetch(ctx context.Context, m model.BookManifest) []model.FetchResult {
	if !m.Authorized {
		return nil
	}
	if m.Whole != nil {
		r := f.unit(ctx, m.Reference, "Book", m.Whole.DownloadURL)
		f.progress(1, 1, r.Label)
		return []model.FetchResult{r}
	}
	out := make([]model.FetchResult, 0, len(m.Chapters))
	for i, c := range m.Chapters {
		label := fmt.Sprintf("Chapter %d", i+1)
		if c.Title != nil && *c.Title != "" {
			label = fmt.Sprintf("Chapter %d: %s", i+1, *c.Title)
		}
		out = append(out, f.unit(ctx, m.Reference, label, c.DownloadURL))
		f.progress(i+1, len(m.Chapters), label)
	}
	return out
}

func (f *Fetcher) progress(done, total int, label string) {
	if f.Progress != nil {
		f.Progress(done, total, label)
	}
}

func (f *Fetcher) unit(ctx context.Context, ref model.BookReference, label, u string) model.FetchResult {
	r := model.FetchResult{Reference: ref, Label: label}
	if u == "" {
		r.Err = fmt.Errorf("%w: %s", model.ErrMissingAsset, label)
		return r
	}
	r.Payload, r.Err = Download(ctx, f.Client, u)
	if r.Err != nil {
		r.Err = fmt.Errorf("%s: %w", label, r.Err)
	}
	return r
}

// Download fetches one PDF asset. Anything other than a 200 response with
// a PDF content type is reported as model.ErrFetch.
func Download(ctx context.Context, c httpx.Doer, u string) ([]byte, error) {
	resp, err := httpx.Get(ctx, c, u, url.Values{"download": {"true"}}, pdfType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetch, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", model.ErrFetch, u, resp.Status)
	}
	if mt := resp.MediaType(); mt != pdfType {
		return nil, fmt.Errorf("%w: %s sent %q, not a pdf", model.ErrFetch, u, mt)
	}
	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: %s sent an empty body", model.ErrFetch, u)
	}
	return resp.Body, nil
}
