package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/pkg/media"
	"github.com/ccollicutt/lyricsync/pkg/output"
	"github.com/ccollicutt/lyricsync/pkg/position"
)

// AtOptions holds command-line options for the at command.
type AtOptions struct {
	Output   string
	Duration string
	Verbose  bool
	Quiet    bool
}

// NewAtCommand creates the at command.
func NewAtCommand() *cobra.Command {
	opts := &AtOptions{}

	cmd := &cobra.Command{
		Use:   "at <lyrics-file> <position>...",
		Short: "Show the active lyric line at one or more positions",
		Long: `Resolve the active lyric line for each playback position.

Positions are given as milliseconds (75000), M:SS (1:15) or M:SS.fff (1:15.250).
When several lines share a timestamp the last of them is active. Positions
before the first line resolve to the first line.

With --duration the progress fraction is shown as well. It is not clamped,
so a position past the duration reports more than 100%.

Exit codes:
  0 - Lines resolved
  1 - No timed lines found
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAt(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), default from config")
	cmd.Flags().StringVarP(&opts.Duration, "duration", "d", "", "Track duration (ms or M:SS)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show raw positions")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the active line text")

	return cmd
}

func runAt(cmd *cobra.Command, args []string, opts *AtOptions) error {
	ctx := commandContext(cmd)
	path := args[0]

	positions := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		ms, err := position.ParseClock(arg)
		if err != nil {
			return fmt.Errorf("invalid position: %w", err)
		}
		positions = append(positions, ms)
	}

	var durationMs int64
	if opts.Duration != "" {
		d, err := position.ParseClock(opts.Duration)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		durationMs = d
	}

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

	report := output.NewFramesReport(path, tl, durationMs, positions)
	if err := formatter.FormatFrames(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if tl.IsEmpty() {
		ExitCode = ExitNoLyrics
	}
	return nil
}
