// Package assemble joins fetched PDF parts into one document.
package assemble

import (
	"fmt"

	"elibrary/src/internal/logger"
	"elibrary/src/internal/model"
)

// Merger accumulates PDF parts and renders the combined document.
// Append rejects a part it cannot use; the part is then left out.
type Merger interface {
	Append(part []byte) error
	Bytes() ([]byte, error)
}

// Assemble merges the successful results in order. Failed results are
// skipped. With no usable part it returns model.ErrNoContent.
func Assemble(m model.BookManifest, results []model.FetchResult, mg Merger) (model.AssembledDocument, error) {
	doc := model.AssembledDocument{ISBN: m.ISBN, Title: m.Title, Year: m.Year}
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if err := mg.Append(r.Payload); err != nil {
			logger.Warn("%s: %s dropped: %v", m.ISBN, r.Label, err)
			continue
		}
		doc.Parts++
	}
	if doc.Parts == 0 {
		return model.AssembledDocument{}, fmt.Errorf("%w: no part of %s could be downloaded", model.ErrNoContent, m.ISBN)
	}
	b, err := mg.Bytes()
	if err != nil {
		return model.AssembledDocument{}, fmt.Errorf("merge %s: %w", m.ISBN, err)
	}
	doc.Bytes = b
	return doc, nil
}
