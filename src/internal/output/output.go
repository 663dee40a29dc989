// Package output names and writes assembled documents.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"elibrary/src/internal/model"
)

const illegal = `/\:*?"<>|`

// Stem returns the file name stem for a book: the normalized title, or the
// ISBN when the title is missing or holds a character that is not allowed
// in file names.
func Stem(title *string, isbn string) string {
	if title == nil {
		return isbn
	}
	t := strings.Join(strings.Fields(norm.NFC.String(*title)), " ")
	if t == "" || t == "." || t == ".." {
		return isbn
	}
	for _, r := range t {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(illegal, r) {
			return isbn
		}
	}
	return t
}

// maxName bounds a final file name in bytes. It leaves room within the
// usual 255-byte limit for the " (n)" suffix and the temporary
// ".<name>.<random>.part" name used while writing.
const maxName = 224

// Filename returns "<stem>[-<year>].pdf" for doc. A name longer than
// maxName bytes falls back to the ISBN stem.
func Filename(doc model.AssembledDocument) string {
	name := withYear(Stem(doc.Title, doc.ISBN), doc.Year)
	if len(name) > maxName {
		name = withYear(doc.ISBN, doc.Year)
	}
	return name
}

func withYear(stem string, year *int) string {
	if year != nil {
		stem = fmt.Sprintf("%s-%d", stem, *year)
	}
	return stem + ".pdf"
}

// Writer stores documents in Dir. With Force a missing Dir is created.
type Writer struct {
	Dir   string
	Force bool
}

// CheckDir makes sure Dir is a writable directory, creating it when Force
// is set. It reports whether the directory was created. Failures wrap
// model.ErrOutputDirectory.
func (w Writer) CheckDir() (bool, error) {
	created := false
	fi, err := os.Stat(w.Dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return false, fmt.Errorf("%w: %s is not a directory", model.ErrOutputDirectory, w.Dir)
		}
	case errors.Is(err, fs.ErrNotExist):
		if !w.Force {
			return false, fmt.Errorf("%w: %s does not exist (use --force to create it)", model.ErrOutputDirectory, w.Dir)
		}
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return false, fmt.Errorf("%w: %v", model.ErrOutputDirectory, err)
		}
		created = true
	default:
		return false, fmt.Errorf("%w: %v", model.ErrOutputDirectory, err)
	}
	f, err := os.CreateTemp(w.Dir, ".hanser-check-*")
	if err != nil {
		return created, fmt.Errorf("%w: cannot write to %s: %v", model.ErrOutputDirectory, w.Dir, err)
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	return created, nil
}

// Write stores doc under a collision-free name and returns the final path.
// The data lands in a temporary file first and is renamed into place, so a
// failed write never leaves a partial PDF behind.
func (w Writer) Write(doc model.AssembledDocument) (string, error) {
	if len(doc.Bytes) == 0 {
		return "", fmt.Errorf("%w: refusing to write an empty document for %s", model.ErrNoContent, doc.ISBN)
	}
	if _, err := w.CheckDir(); err != nil {
		return "", err
	}
	path, err := Unique(w.Dir, Filename(doc))
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(w.Dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", model.ErrOutputDirectory, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", err
	}
	if _, err := tmp.Write(doc.Bytes); err != nil {
		return fail(fmt.Errorf("write %s: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("sync %s: %w", tmpName, err))
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(fmt.Errorf("chmod %s: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename into %s: %w", path, err)
	}
	return path, nil
}

// Unique returns dir/name, or dir/"<stem> (n)<ext>" with the smallest n >= 1
// that does not exist yet.
func Unique(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; ; n++ {
		p := filepath.Join(dir, candidate)
		_, err := os.Lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", p, err)
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
}
