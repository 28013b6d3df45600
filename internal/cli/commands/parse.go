package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/media"
	"github.com/ccollicutt/lyricsync/pkg/output"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <lyrics-file>",
		Short: "Parse an LRC file and print its timeline",
		Long: `Parse an LRC lyrics file (or an audio file with embedded lyrics) and
print the sorted timeline.

Lines without a [mm:ss.xx] timestamp are skipped. The tag may appear
anywhere in the line; only the first one is used.

Exit codes:
  0 - Timeline has at least one line
  1 - No timed lines found
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), default from config")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show extra summary detail")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no lines")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := commandContext(cmd)
	path := args[0]

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

	tl, err := loadTimeline(ctx, path)
	if errors.Is(err, media.ErrNoLyrics) {
		fmt.Fprintf(os.Stderr, "No lyrics: %v\n", err)
		ExitCode = ExitNoLyrics
		return nil
	}
	if err != nil {
		return err
	}

	report := output.NewTimelineReport(path, tl)
	if err := formatter.FormatTimeline(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.IsEmpty() {
		ExitCode = ExitNoLyrics
	}
	return nil
}
