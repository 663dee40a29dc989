package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"elibrary/src/internal/model"
)

func TestSummaryCounts(t *testing.T) {
	s := New("/tmp/out")
	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)

	s.Add(Outcome{Input: "a", Status: StatusSaved, Path: "/tmp/out/a.pdf"}, nil)
	s.Add(Outcome{Input: "b", Status: StatusFailed}, fmt.Errorf("wrap: %w", model.ErrNoContent))
	s.Add(Outcome{Input: "c", Status: StatusSaved}, nil)
	s.Add(Outcome{Input: "d", Status: StatusInvalid}, model.ErrInvalidReference)

	assert.Equal(t, 2, s.Count(StatusSaved))
	assert.Equal(t, "nocontent", s.Books[1].Kind)
	assert.Equal(t, "wrap: no content", s.Books[1].Error)
	assert.Equal(t, "2 saved, 1 failed, 1 invalid", s.Line())
	assert.Equal(t, "nothing to do", New("").Line())
}

func TestWriteFileYAML(t *testing.T) {
	s := New("out")
	s.Add(Outcome{Input: "9783446464001", ISBN: "9783446464001", Status: StatusFailed, Chapters: 3, Failed: []string{"Chapter 2"}}, model.ErrFetch)
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, s.WriteFile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, s.RunID, got["run_id"])
	books := got["books"].([]any)
	require.Len(t, books, 1)
	book := books[0].(map[string]any)
	assert.Equal(t, "failed", book["status"])
	assert.Equal(t, "fetch", book["kind"])
	assert.Equal(t, 3, book["chapters"])
	assert.Equal(t, []any{"Chapter 2"}, book["failed"])
}
