package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/lyricsync/internal/tui"
	"github.com/ccollicutt/lyricsync/pkg/config"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/media"
	"github.com/ccollicutt/lyricsync/pkg/playback"
	"github.com/ccollicutt/lyricsync/pkg/position"
)

// tailMs is how long playback runs past the last line when no duration is known.
const tailMs = 5000

// FollowOptions holds command-line options for the follow command.
type FollowOptions struct {
	Plain    bool
	Duration string
	Start    string
	Interval time.Duration
}

// NewFollowCommand creates the follow command.
func NewFollowCommand() *cobra.Command {
	opts := &FollowOptions{}

	cmd := &cobra.Command{
		Use:   "follow <lyrics-or-audio-file>",
		Short: "Play along and follow the active lyric line",
		Long: `Run a simulated playback clock and follow the lyrics in real time.

The position is polled at the configured interval (50ms by default) and the
active line is looked up on every tick. By default an interactive terminal
view is shown. With --plain each line change is printed as it happens.

The track duration comes from --duration, then from the audio file when a
WAV file is given. Without either, playback ends 5s after the last line.

Exit codes:
  0 - Playback finished
  1 - No timed lines found
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Print line changes instead of the terminal view")
	cmd.Flags().StringVarP(&opts.Duration, "duration", "d", "", "Track duration (ms or M:SS)")
	cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "Start position (ms or M:SS)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Poll interval, default from config")

	return cmd
}

func runFollow(cmd *cobra.Command, args []string, opts *FollowOptions) error {
	ctx := commandContext(cmd)
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.Interval > 0 {
		cfg.Playback.PollInterval = opts.Interval
	}

	tl, err := loadTimeline(ctx, path)
	if err != nil && !errors.Is(err, media.ErrNoLyrics) {
		return err
	}

	durationMs, err := followDuration(ctx, path, opts.Duration, tl)
	if err != nil {
		return err
	}

	var startMs int64
	if opts.Start != "" {
		if startMs, err = position.ParseClock(opts.Start); err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
	}

	clock := playback.NewClock(durationMs, playback.WithStart(startMs))

	if opts.Plain {
		if tl.IsEmpty() {
			fmt.Fprintln(os.Stderr, "No lyrics loaded")
			ExitCode = ExitNoLyrics
			return nil
		}
		return followPlain(ctx, cmd.OutOrStdout(), tl, clock, cfg)
	}

	title := filepath.Base(path)
	if media.IsAudio(path) {
		if info, err := media.Probe(ctx, path); err == nil && info.Artist != "" {
			title = info.Artist + " - " + info.Title
		}
	}

	clock.Play()
	if err := tui.Run(tui.New(title, tl, clock, cfg), tea.WithContext(ctx)); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal view: %w", err)
	}

	if tl.IsEmpty() {
		ExitCode = ExitNoLyrics
	}
	return nil
}

// followDuration resolves the track length from the flag, the audio file or
// the timeline, in that order.
func followDuration(ctx context.Context, path, flag string, tl lrc.Timeline) (int64, error) {
	if flag != "" {
		d, err := position.ParseClock(flag)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %w", err)
		}
		return d, nil
	}

	if media.IsAudio(path) {
		info, err := media.Probe(ctx, path)
		if err != nil {
			return 0, err
		}
		if info.DurationMs > 0 {
			return info.DurationMs, nil
		}
	}

	if tl.IsEmpty() {
		return 0, nil
	}
	return tl.LastTime() + tailMs, nil
}

// followPlain prints each active-line change until the clock reaches the
// end or ctx is cancelled.
func followPlain(ctx context.Context, w io.Writer, tl lrc.Timeline, clock *playback.Clock, cfg *config.Config) error {
	last := -1
	poller := playback.NewPoller(clock, cfg.Playback.PollInterval)

	clock.Play()
	err := poller.Run(ctx, func(pos, dur int64) {
		f := position.Resolve(tl, pos, dur)
		if f.Index != last {
			last = f.Index
			text := f.Line.Text
			if text == "" {
				text = "♪"
			}
			fmt.Fprintf(w, "%s  %s\n", position.FormatClock(f.Line.TimeMs), text)
		}
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
