package output

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/ccollicutt/lyricsync/pkg/inspect"
	"github.com/ccollicutt/lyricsync/pkg/position"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// FormatTimeline renders the timeline as text.
func (f *TextFormatter) FormatTimeline(ctx context.Context, report *TimelineReport, w io.Writer) error {
	s := report.Summary
	if f.opts.Quiet {
		fmt.Fprintf(w, "%s: %d lines, %s to %s\n", report.Source, s.Lines, s.First, s.Last)
		return nil
	}

	fmt.Fprintf(w, "=== Timeline: %s ===\n", report.Source)
	fmt.Fprintln(w)

	if report.IsEmpty() {
		fmt.Fprintln(w, "  No timed lines found")
		fmt.Fprintln(w)
	}

	width := len(fmt.Sprint(len(report.Entries)))
	for _, e := range report.Entries {
		text := e.Text
		if text == "" {
			text = "♪"
		}
		fmt.Fprintf(w, "  %*d  %s  %s\n", width, e.Index, e.Stamp, text)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d lines, %s to %s\n", s.Lines, s.First, s.Last)
	if f.opts.Verbose {
		fmt.Fprintf(w, "Empty lines: %d\n", s.EmptyLines)
	}
	return nil
}

// FormatFrames renders one line per resolved position.
func (f *TextFormatter) FormatFrames(ctx context.Context, report *FramesReport, w io.Writer) error {
	if !f.opts.Quiet {
		fmt.Fprintf(w, "=== Positions: %s (%d lines) ===\n", report.Source, report.Lines)
		fmt.Fprintln(w)
	}

	for i := range report.Frames {
		f.formatFrame(&report.Frames[i], w)
	}
	return nil
}

func (f *TextFormatter) formatFrame(fr *position.Frame, w io.Writer) {
	clock := fr.Elapsed
	if fr.DurationMs > 0 {
		clock = fmt.Sprintf("%s / %s (%.1f%%)", fr.Elapsed, fr.Total, fr.Fraction*100)
	}

	if fr.Line == nil {
		fmt.Fprintf(w, "%s  (no lyrics)\n", clock)
		return
	}

	if f.opts.Quiet {
		fmt.Fprintln(w, fr.Line.Text)
		return
	}

	fmt.Fprintf(w, "%s  #%d %s %s\n", clock, fr.Index, Stamp(fr.Line.TimeMs), fr.Line.Text)
	if f.opts.Verbose {
		fmt.Fprintf(w, "    position: %dms\n", fr.PositionMs)
	}
}

// FormatInspection renders the inspection report as text.
func (f *TextFormatter) FormatInspection(ctx context.Context, report *InspectionReport, w io.Writer) error {
	r := report.Report
	if f.opts.Quiet {
		fmt.Fprintf(w, "%s: %d timed, %d skipped, %.1f%% coverage\n",
			report.Source, r.TimedLines, r.SkippedLines, r.Coverage*100)
		return nil
	}

	fmt.Fprintln(w, "=== Lyrics Inspection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", report.Source)
	fmt.Fprintf(w, "Lines: %d (%d timed, %d skipped, %d blank)\n",
		r.TotalLines, r.TimedLines, r.SkippedLines, r.BlankLines)
	fmt.Fprintf(w, "Coverage: %.1f%%\n", r.Coverage*100)
	if r.HasTimedLines() {
		fmt.Fprintf(w, "Range: %s to %s\n", Stamp(r.FirstMs), Stamp(r.LastMs))
	}
	fmt.Fprintln(w)

	if len(r.Metadata) > 0 {
		fmt.Fprintln(w, "Metadata:")
		keys := make([]string, 0, len(r.Metadata))
		for k := range r.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-14s %s\n", inspect.KnownMetadataTags[k]+":", r.Metadata[k])
		}
		fmt.Fprintln(w)
	}

	if !r.HasTimedLines() {
		fmt.Fprintln(w, "No timestamped lines found.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: lines need a tag like [01:23.45] to be synchronized.")
		return nil
	}

	if _, ok := r.Offset(); ok {
		fmt.Fprintln(w, "Note: [offset:] is reported only; timestamps are used as written.")
	}
	if !r.SourceOrdered {
		fmt.Fprintln(w, "Note: timestamps are out of order in the file; lines are sorted by time.")
	}
	if r.MultiTagLines > 0 {
		fmt.Fprintf(w, "Note: %d line(s) carry several timestamps; only the first is used.\n", r.MultiTagLines)
	}
	if r.DuplicateTimestamps > 0 {
		fmt.Fprintf(w, "Note: %d line(s) share a timestamp with the previous line; the later one wins.\n", r.DuplicateTimestamps)
	}
	if len(r.UnknownTags) > 0 {
		fmt.Fprintf(w, "Note: unknown tags ignored: %v\n", r.UnknownTags)
	}

	if f.opts.Verbose && len(r.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped lines (sample):")
		for _, line := range r.Skipped {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	return nil
}
