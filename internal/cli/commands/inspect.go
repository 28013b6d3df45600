package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/inspect"
	"github.com/ccollicutt/lyricsync/pkg/media"
	"github.com/ccollicutt/lyricsync/pkg/output"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output     string
	SampleSize int
	Verbose    bool
	Quiet      bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <lyrics-file>...",
		Short: "Report on the structure of LRC files",
		Long: `Inspect LRC files and report how they will be read.

Arguments may be file paths or glob patterns (quote them to stop the shell
expanding them).

Reports:
  - Timed, skipped and blank line counts
  - Metadata tags ([ti:], [ar:], [offset:] ...)
  - Lines with several timestamps (only the first is used)
  - Shared timestamps and out-of-order lines

Use this when a file parses to fewer lines than expected.

Exit codes:
  0 - Every file has timed lines
  1 - A file has no timed lines
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), default from config")
	cmd.Flags().IntVarP(&opts.SampleSize, "samples", "n", 5, "Number of skipped lines to show")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show skipped line samples")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts.Output, cfg, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	paths, err := media.ExpandPaths(args)
	if err != nil {
		return err
	}

	inspector := inspect.New(inspect.WithSampleSize(opts.SampleSize))
	for i, path := range paths {
		report, err := inspector.InspectFile(ctx, path)
		if errors.Is(err, media.ErrNoLyrics) {
			fmt.Fprintf(os.Stderr, "No lyrics: %v\n", err)
			ExitCode = ExitNoLyrics
			continue
		}
		if err != nil {
			return fmt.Errorf("inspection failed: %w", err)
		}

		if i > 0 && !opts.Quiet && formatter.Name() == "text" {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := formatter.FormatInspection(ctx, &output.InspectionReport{Source: path, Report: report}, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}

		if !report.HasTimedLines() {
			ExitCode = ExitNoLyrics
		}
	}
	return nil
}
