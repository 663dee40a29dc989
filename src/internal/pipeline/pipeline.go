// Package pipeline runs a batch of book references through resolve, fetch,
// assemble and write, one book at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"elibrary/src/internal/assemble"
	"elibrary/src/internal/fetch"
	"elibrary/src/internal/httpx"
	"elibrary/src/internal/logger"
	"elibrary/src/internal/model"
	"elibrary/src/internal/openlibrary"
	"elibrary/src/internal/output"
	"elibrary/src/internal/page"
	"elibrary/src/internal/reference"
	"elibrary/src/internal/report"
	"elibrary/src/internal/resolver"
)

// RunConfig is everything a batch needs. Zero values for the injectable
// fields select the production implementations.
type RunConfig struct {
	OutputDir  string
	Force      bool
	Inputs     []reference.Input
	Policy     reference.Policy
	BaseURL    string
	LookupYear bool
	ReportPath string
	Timeout    time.Duration

	Client     httpx.Doer
	Extractor  page.Extractor
	YearLookup resolver.YearLookup
	NewMerger  func() assemble.Merger
	Progress   fetch.ProgressFunc
}

func (c *RunConfig) defaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Client == nil {
		c.Client = httpx.NewClient(c.Timeout)
	}
	if c.LookupYear && c.YearLookup == nil {
		c.YearLookup = openlibrary.FetchYear
	}
	if c.NewMerger == nil {
		c.NewMerger = func() assemble.Merger { return assemble.NewPDF() }
	}
}

// Run processes every input in order. Per-book failures are recorded in the
// summary and do not stop the batch. The returned error is non-nil only when
// the batch as a whole could not run: a bad base URL or an unusable output
// directory. The summary is returned in every case but the first.
func Run(ctx context.Context, cfg RunConfig) (*report.Summary, error) {
	cfg.defaults()
	norm, err := reference.New(cfg.BaseURL, cfg.Policy)
	if err != nil {
		return nil, err
	}
	sum := report.New(cfg.OutputDir)
	defer finish(sum, cfg.ReportPath)

	refs, rejected := norm.Normalize(cfg.Inputs)
	for _, r := range rejected {
		st := report.StatusInvalid
		if errors.Is(r.Err, model.ErrDuplicateReference) {
			st = report.StatusDuplicate
			logger.Status("skipped", "%v", r.Err)
		} else {
			logger.Status("error", "%v", r.Err)
		}
		sum.Add(report.Outcome{Input: r.Input.Raw, Status: st}, r.Err)
	}

	w := output.Writer{Dir: cfg.OutputDir, Force: cfg.Force}
	created, err := w.CheckDir()
	if err != nil {
		logger.Status("error", "%v", err)
		for _, ref := range refs {
			sum.Add(report.Outcome{Input: ref.RawInput, ISBN: ref.ISBN, Status: report.StatusFailed}, err)
		}
		return sum, err
	}
	if created {
		logger.Status("info", "created output directory %s", cfg.OutputDir)
	}

	var opts []resolver.Option
	if cfg.LookupYear {
		opts = append(opts, resolver.WithYearLookup(cfg.YearLookup))
	}
	b := &book{
		res:       resolver.New(cfg.Client, cfg.Extractor, opts...),
		fetcher:   &fetch.Fetcher{Client: cfg.Client, Progress: cfg.Progress},
		writer:    w,
		newMerger: cfg.NewMerger,
	}
	for i, ref := range refs {
		logger.Divider()
		logger.Status(fmt.Sprintf("book %d/%d", i+1, len(refs)), "%s", ref.CanonicalURL)
		o, err := b.process(ctx, ref)
		if err != nil {
			logger.Status("error", "%v", err)
		}
		sum.Add(o, err)
	}
	return sum, nil
}

func finish(sum *report.Summary, path string) {
	sum.Finished = time.Now().UTC()
	logger.Divider()
	logger.Status("done", "%s", sum.Line())
	if path == "" {
		return
	}
	if err := sum.WriteFile(path); err != nil {
		logger.Warn("%v", err)
		return
	}
	logger.Debug("report written to %s", path)
}

type book struct {
	res       *resolver.Resolver
	fetcher   *fetch.Fetcher
	writer    output.Writer
	newMerger func() assemble.Merger
}

func (b *book) process(ctx context.Context, ref model.BookReference) (report.Outcome, error) {
	o := report.Outcome{Input: ref.RawInput, ISBN: ref.ISBN, Status: report.StatusFailed}

	m, err := b.res.Resolve(ctx, ref)
	if err != nil {
		return o, err
	}
	o.Title = m.DisplayTitle()
	logger.Status("found", "%s", m)
	if !m.Authorized {
		o.Status = report.StatusUnauthorized
		return o, fmt.Errorf("%w: no access to %s", model.ErrUnauthorized, ref.CanonicalURL)
	}

	if m.Whole != nil {
		logger.Status("download", "complete book")
	} else {
		o.Chapters = len(m.Chapters)
		logger.Status("download", "%d chapters", len(m.Chapters))
	}
	results := b.fetcher.Fetch(ctx, m)
	for _, r := range results {
		if r.Err != nil {
			o.Failed = append(o.Failed, r.Label)
			logger.Warn("%v", r.Err)
		}
	}

	logger.Status("collecting", "%d of %d parts", len(results)-len(o.Failed), len(results))
	doc, err := assemble.Assemble(m, results, b.newMerger())
	if err != nil {
		return o, err
	}
	path, err := b.writer.Write(doc)
	if err != nil {
		return o, err
	}
	o.Status = report.StatusSaved
	o.Path = path
	logger.Status("saved", "%s", path)
	return o, nil
}
