// Package report records the per-book outcome of a batch run.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"elibrary/src/internal/model"
)

// Status is the final state of one input.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusUnauthorized Status = "unauthorized"
	StatusFailed       Status = "failed"
	StatusInvalid      Status = "invalid"
	StatusDuplicate    Status = "duplicate"
)

// Outcome describes what happened to one input token.
type Outcome struct {
	Input    string   `yaml:"input"`
	ISBN     string   `yaml:"isbn,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	Status   Status   `yaml:"status"`
	Path     string   `yaml:"path,omitempty"`
	Error    string   `yaml:"error,omitempty"`
	Kind     string   `yaml:"kind,omitempty"`
	Chapters int      `yaml:"chapters,omitempty"`
	Failed   []string `yaml:"failed,omitempty"`
}

// Summary is the result of one run.
type Summary struct {
	RunID     string    `yaml:"run_id"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished,omitempty"`
	OutputDir string    `yaml:"output_dir"`
	Books     []Outcome `yaml:"books"`
}

// New starts a summary with a fresh run id.
func New(outputDir string) *Summary {
	return &Summary{RunID: uuid.NewString(), Started: time.Now().UTC(), OutputDir: outputDir}
}

// Add appends an outcome. A non-nil err fills Error and Kind.
func (s *Summary) Add(o Outcome, err error) {
	if err != nil {
		o.Error = err.Error()
		o.Kind = model.Kind(err)
	}
	s.Books = append(s.Books, o)
}

// Count returns how many books ended in st.
func (s *Summary) Count(st Status) int {
	n := 0
	for _, b := range s.Books {
		if b.Status == st {
			n++
		}
	}
	return n
}

// Line renders a one-line tally such as "2 saved, 1 failed".
func (s *Summary) Line() string {
	out := ""
	for _, st := range []Status{StatusSaved, StatusUnauthorized, StatusFailed, StatusInvalid, StatusDuplicate} {
		if n := s.Count(st); n > 0 {
			if out != "" {
				out += ", "
			}
			out += fmt.Sprintf("%d %s", n, st)
		}
	}
	if out == "" {
		return "nothing to do"
	}
	return out
}

// WriteFile stores the summary as YAML.
func (s *Summary) WriteFile(path string) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
