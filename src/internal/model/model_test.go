package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestManifestValidate(t *testing.T) {
	title := "Book"
	m := BookManifest{ISBN: "9783446450776", Title: &title, Authorized: true}
	if err := m.Validate(); !errors.Is(err, ErrMissingAsset) {
		t.Fatalf("empty authorized manifest: want ErrMissingAsset, got %v", err)
	}
	m.Whole = &WholeBookAsset{DownloadURL: "https://x/pdf"}
	if err := m.Validate(); err != nil {
		t.Fatalf("whole-book manifest: %v", err)
	}
	m.Chapters = []Chapter{{DownloadURL: "https://x/1"}}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error when both variants populated")
	}
	u := BookManifest{ISBN: "9783446450776"}
	if err := u.Validate(); err != nil {
		t.Fatalf("unauthorized manifest: %v", err)
	}
	u.Chapters = []Chapter{{}}
	if err := u.Validate(); err == nil {
		t.Fatalf("unauthorized manifest with chapters must fail")
	}
}

func TestManifestString(t *testing.T) {
	y := 2020
	m := BookManifest{ISBN: "123", Year: &y, Authors: []string{"Ann", "Bob"}, Chapters: make([]Chapter, 3)}
	s := m.String()
	if !strings.Contains(s, "'123' (2020)") || !strings.Contains(s, "Ann and Bob") || !strings.Contains(s, "3 chapters") {
		t.Fatalf("String: %q", s)
	}
}

func TestJoinAuthors(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{" Ann  Lee "}, "Ann Lee"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B et al."},
	}
	for _, c := range cases {
		if got := JoinAuthors(c.in); got != c.want {
			t.Fatalf("JoinAuthors(%v): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestKind(t *testing.T) {
	if k := Kind(fmt.Errorf("chapter 2: %w", ErrFetch)); k != "fetch" {
		t.Fatalf("Kind wrapped fetch: %q", k)
	}
	if k := Kind(errors.New("other")); k != "error" {
		t.Fatalf("Kind other: %q", k)
	}
	if k := Kind(nil); k != "" {
		t.Fatalf("Kind nil: %q", k)
	}
}
