// Package output provides text and JSON rendering for timelines, resolved
// positions and inspection reports.
package output

import (
	"fmt"

	"github.com/ccollicutt/lyricsync/pkg/inspect"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/position"
)

// TimelineReport is the rendered form of a parsed timeline.
type TimelineReport struct {
	// Source is the file the lyrics came from.
	Source string `json:"source"`

	Summary TimelineSummary `json:"summary"`
	Entries []Entry         `json:"entries"`
}

// TimelineSummary provides aggregate figures for a timeline.
type TimelineSummary struct {
	Lines      int    `json:"lines"`
	EmptyLines int    `json:"empty_lines"`
	FirstMs    int64  `json:"first_ms"`
	LastMs     int64  `json:"last_ms"`
	First      string `json:"first"`
	Last       string `json:"last"`
}

// Entry is a single timeline line with its index and display stamp.
type Entry struct {
	Index  int    `json:"index"`
	TimeMs int64  `json:"time_ms"`
	Stamp  string `json:"stamp"`
	Text   string `json:"text"`
}

// NewTimelineReport builds a TimelineReport from a timeline.
func NewTimelineReport(source string, tl lrc.Timeline) *TimelineReport {
	r := &TimelineReport{
		Source:  source,
		Entries: make([]Entry, 0, tl.Len()),
	}

	for i, line := range tl.Lines() {
		r.Entries = append(r.Entries, Entry{
			Index:  i,
			TimeMs: line.TimeMs,
			Stamp:  Stamp(line.TimeMs),
			Text:   line.Text,
		})
		if line.Text == "" {
			r.Summary.EmptyLines++
		}
	}

	r.Summary.Lines = tl.Len()
	if !tl.IsEmpty() {
		r.Summary.FirstMs = tl.At(0).TimeMs
		r.Summary.LastMs = tl.LastTime()
	}
	r.Summary.First = position.FormatClock(r.Summary.FirstMs)
	r.Summary.Last = position.FormatClock(r.Summary.LastMs)

	return r
}

// IsEmpty returns true if the report holds no lines.
func (r *TimelineReport) IsEmpty() bool {
	return r.Summary.Lines == 0
}

// FramesReport holds the resolved frames for a list of positions.
type FramesReport struct {
	Source     string           `json:"source"`
	Lines      int              `json:"lines"`
	DurationMs int64            `json:"duration_ms"`
	Frames     []position.Frame `json:"frames"`
}

// NewFramesReport resolves each position against the timeline.
func NewFramesReport(source string, tl lrc.Timeline, durationMs int64, positions []int64) *FramesReport {
	r := &FramesReport{
		Source:     source,
		Lines:      tl.Len(),
		DurationMs: durationMs,
		Frames:     make([]position.Frame, 0, len(positions)),
	}
	for _, pos := range positions {
		r.Frames = append(r.Frames, position.Resolve(tl, pos, durationMs))
	}
	return r
}

// InspectionReport wraps an inspect.Report with its source.
type InspectionReport struct {
	Source string          `json:"source"`
	Report *inspect.Report `json:"report"`
}

// Stamp renders milliseconds as an LRC-style [mm:ss.xx] tag.
func Stamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("[%02d:%02d.%02d]", ms/60_000, (ms/1000)%60, (ms%1000)/10)
}
