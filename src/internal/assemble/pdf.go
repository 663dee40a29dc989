package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfMagic = []byte("%PDF-")

var disableConfig sync.Once

// PDF merges parts with pdfcpu. Each part is validated on Append so a
// corrupt download is dropped without spoiling the others.
type PDF struct {
	conf  *pdfmodel.Configuration
	parts [][]byte
}

// NewPDF returns an empty pdfcpu-backed Merger.
func NewPDF() *PDF {
	// pdfcpu otherwise writes a config directory under the user's home.
	disableConfig.Do(api.DisableConfigDir)
	return &PDF{conf: pdfmodel.NewDefaultConfiguration()}
}

var _ Merger = (*PDF)(nil)

// Append accepts part if it starts with a PDF header and validates.
func (p *PDF) Append(part []byte) error {
	if !bytes.HasPrefix(part, pdfMagic) {
		return errors.New("not a pdf")
	}
	if err := api.Validate(bytes.NewReader(part), p.conf); err != nil {
		return fmt.Errorf("invalid pdf: %w", err)
	}
	p.parts = append(p.parts, part)
	return nil
}

// Bytes returns the merged document. A single part is returned unchanged.
func (p *PDF) Bytes() ([]byte, error) {
	switch len(p.parts) {
	case 0:
		return nil, errors.New("nothing to merge")
	case 1:
		return p.parts[0], nil
	}
	rs := make([]io.ReadSeeker, len(p.parts))
	for i, b := range p.parts {
		rs[i] = bytes.NewReader(b)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(rs, &buf, false, p.conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
