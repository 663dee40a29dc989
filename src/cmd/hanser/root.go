package main

import (
	"errors"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"elibrary/src/internal/config"
	"elibrary/src/internal/fetch"
	"elibrary/src/internal/logger"
	"elibrary/src/internal/model"
	"elibrary/src/internal/pipeline"
	"elibrary/src/internal/reference"
)

// indirection for testability
var runPipeline = pipeline.Run

var errNoReferences = errors.New("no book given: pass a book URL or ISBN, or use --isbn (see --help)")

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		isbns   []string
	)
	cmd := &cobra.Command{
		Use:   "hanser [URL|ISBN ...]",
		Short: "Download books from the Hanser eLibrary as single PDFs",
		Long: `Download books from hanser-elibrary.com.

Each argument is a book URL (https://www.hanser-elibrary.com/isbn/<ISBN> or
.../doi/book/<DOI>/<ISBN>) or a bare ISBN-10/13. Books offered as a single
file are saved as is; books split into chapters are downloaded chapter by
chapter and merged in order. Books you have no access to are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			used, err := config.ReadFile(v, cfgFile)
			if err != nil {
				return err
			}
			s, err := config.Load(v)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.OutOrStdout())
			logger.SetVerbose(s.Verbose)
			if used != "" {
				logger.Debug("using config file %s", used)
			}

			inputs := collectInputs(args, isbns)
			if len(inputs) == 0 {
				return errNoReferences
			}
			rc := s.RunConfig(inputs)
			rc.Progress = progress(cmd.ErrOrStderr())
			_, err = runPipeline(cmd.Context(), rc)
			return err
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&isbns, "isbn", nil, "ISBN-10/13 of a book to download (repeatable, comma separated)")
	f.StringP("out", "o", ".", "directory to save the PDFs in")
	f.BoolP("force", "f", false, "create the output directory if it does not exist")
	f.String("dedupe", string(reference.PolicyExact), "duplicate detection: exact (same URL) or edition (ISBN-10 and ISBN-13 of one book)")
	f.Bool("lookup-year", false, "ask OpenLibrary for the year when the page shows none")
	f.String("report", "", "write a YAML summary of the run to this file")
	f.BoolP("verbose", "v", false, "print debug output")
	f.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hanser.yaml)")
	f.String("base-url", reference.DefaultBaseURL, "platform root")
	f.Duration("timeout", 0, "per-request timeout (default 1m)")
	_ = f.MarkHidden("base-url")
	return cmd
}

// collectInputs returns positional tokens followed by --isbn tokens.
func collectInputs(args, isbns []string) []reference.Input {
	out := make([]reference.Input, 0, len(args)+len(isbns))
	for _, a := range args {
		out = append(out, reference.Input{Raw: a, Source: model.SourceArg})
	}
	for _, i := range isbns {
		out = append(out, reference.Input{Raw: i, Source: model.SourceISBN})
	}
	return out
}

// progress draws one bar per book on w.
func progress(w io.Writer) fetch.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(done, total int, label string) {
		if done == 1 || bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionSetWidth(30),
			)
		}
		bar.Describe(label)
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
			bar = nil
		}
	}
}
