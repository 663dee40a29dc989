package page

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookURL = "https://www.hanser-elibrary.com/isbn/9783446464001"

func load(t *testing.T, name, pageURL string) *Document {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	d, err := Parse(b, pageURL)
	require.NoError(t, err)
	return d
}

func TestHanserChapterPage(t *testing.T) {
	d := load(t, "chapters.html", bookURL)
	x := Hanser{}

	assert.True(t, x.IsBookPage(d))
	assert.False(t, x.Restricted(d))

	title, ok := x.Title(d)
	require.True(t, ok)
	assert.Equal(t, "Technische Probleme lösen mit C/C++", title)

	year, ok := x.Year(d)
	require.True(t, ok)
	assert.Equal(t, 2020, year)

	assert.Equal(t, []string{"Norbert Heiderich", "Wolfgang Meyer"}, x.Authors(d))

	_, ok = x.WholeBookLink(d)
	assert.False(t, ok)

	chapters := x.Chapters(d)
	require.Len(t, chapters, 3)
	assert.Equal(t, ChapterLink{Title: "Titelei", DetailURL: "https://www.hanser-elibrary.com/doi/10.3139/9783446464001.fm"}, chapters[0])
	assert.Equal(t, "1 Einleitung", chapters[1].Title)
	assert.Equal(t, ChapterLink{Title: "2 Ohne Link"}, chapters[2])
}

func TestHanserWholeBookPage(t *testing.T) {
	d := load(t, "whole.html", bookURL)
	x := Hanser{}
	link, ok := x.WholeBookLink(d)
	require.True(t, ok)
	assert.Equal(t, "https://www.hanser-elibrary.com/doi/pdf/10.3139/9783446450776", link)
	year, ok := x.Year(d)
	require.True(t, ok)
	assert.Equal(t, 2021, year)
}

func TestHanserRestricted(t *testing.T) {
	d := load(t, "restricted.html", bookURL)
	assert.True(t, Hanser{}.Restricted(d))
	_, ok := Hanser{}.Year(d)
	assert.False(t, ok)
}

func TestHanserChapterAsset(t *testing.T) {
	d := load(t, "chapter.html", "https://www.hanser-elibrary.com/doi/10.3139/9783446464001.001")
	u, ok := Hanser{}.ChapterAsset(d)
	require.True(t, ok)
	assert.Equal(t, "https://www.hanser-elibrary.com/doi/pdf/10.3139/9783446464001.001", u)

	empty, err := Parse([]byte("<html><body><a href='/doi/pdf/x'>direct</a></body></html>"), "https://h.example/a")
	require.NoError(t, err)
	u, ok = Hanser{}.ChapterAsset(empty)
	require.True(t, ok)
	assert.Equal(t, "https://h.example/doi/pdf/x", u)

	none, err := Parse([]byte("<p>nothing</p>"), "https://h.example/a")
	require.NoError(t, err)
	_, ok = Hanser{}.ChapterAsset(none)
	assert.False(t, ok)
	assert.False(t, Hanser{}.IsBookPage(none))
}

func TestTitleFallsBackToOpenGraph(t *testing.T) {
	d, err := Parse([]byte(`<head><meta property="og:title" content=" OG  Book "></head>`), bookURL)
	require.NoError(t, err)
	title, ok := Hanser{}.Title(d)
	require.True(t, ok)
	assert.Equal(t, "OG Book", title)
}

func TestResolve(t *testing.T) {
	d, err := Parse([]byte("<p></p>"), "https://h.example/isbn/1")
	require.NoError(t, err)
	u, ok := d.Resolve("../doi/x")
	assert.True(t, ok)
	assert.Equal(t, "https://h.example/doi/x", u)
	_, ok = d.Resolve("#frag")
	assert.False(t, ok)
	_, ok = d.Resolve("javascript:void(0)")
	assert.False(t, ok)
	_, ok = d.Resolve("  ")
	assert.False(t, ok)
}
