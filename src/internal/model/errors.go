package model

import "errors"

// Sentinel errors shared by the download pipeline. Callers wrap them with
// context and classify with errors.Is.
var (
	// ErrInvalidReference indicates an input token is neither a platform URL
	// nor a checksum-valid ISBN.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrDuplicateReference marks a token dropped by de-duplication.
	ErrDuplicateReference = errors.New("duplicate reference")

	// ErrPageStructure indicates the landing page could not be read as a book page.
	ErrPageStructure = errors.New("unexpected page structure")

	// ErrUnauthorized indicates the page shows the restricted-access marker.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingAsset indicates a chapter or book has no download link.
	ErrMissingAsset = errors.New("missing asset link")

	// ErrFetch indicates a transport or HTTP failure for one asset.
	ErrFetch = errors.New("fetch failed")

	// ErrNoContent indicates every fetch for a book failed.
	ErrNoContent = errors.New("no content")

	// ErrOutputDirectory indicates the output directory cannot be used.
	ErrOutputDirectory = errors.New("output directory unusable")
)

// Kind returns a short label for the first sentinel err wraps, or "error".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidReference):
		return "invalid"
	case errors.Is(err, ErrDuplicateReference):
		return "duplicate"
	case errors.Is(err, ErrPageStructure):
		return "page"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrMissingAsset):
		return "missing"
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrNoContent):
		return "nocontent"
	case errors.Is(err, ErrOutputDirectory):
		return "outdir"
	default:
		return "error"
	}
}
