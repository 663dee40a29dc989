package assemble

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// onePager builds a minimal single-page PDF with a correct xref table.
func onePager(w, h int) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> >>", w, h),
	}
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offs := make([]int, len(objs))
	for i, o := range objs {
		offs[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offs {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return []byte(b.String())
}

func TestPDFRejectsNonPDF(t *testing.T) {
	p := NewPDF()
	if err := p.Append([]byte("<html>login required</html>")); err == nil {
		t.Fatalf("expected html payload to be rejected")
	}
	if _, err := p.Bytes(); err == nil {
		t.Fatalf("expected error for empty merger")
	}
}

func TestPDFSinglePartPassesThrough(t *testing.T) {
	part := onePager(200, 200)
	p := NewPDF()
	if err := p.Append(part); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, part) {
		t.Fatalf("single part was rewritten")
	}
}

func TestPDFMergesInOrder(t *testing.T) {
	p := NewPDF()
	for _, part := range [][]byte{onePager(200, 200), onePager(300, 400), onePager(500, 600)} {
		if err := p.Append(part); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got, err := p.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	n, err := api.PageCount(bytes.NewReader(got), nil)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Fatalf("pages = %d, want 3", n)
	}
}
