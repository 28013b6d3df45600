// Package inspect reports on the structure of an LRC document: which lines
// carry timestamps, which were skipped, and what metadata tags are present.
package inspect

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/media"
)

// KnownMetadataTags lists the ID tags defined by the LRC format.
var KnownMetadataTags = map[string]string{
	"ti":     "Title",
	"ar":     "Artist",
	"al":     "Album",
	"au":     "Author",
	"by":     "LRC author",
	"length": "Length",
	"offset": "Offset (ms)",
	"re":     "Editor",
	"ve":     "Editor version",
}

var (
	metadataRegexp = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]\s*$`)
	tagRegexp      = regexp.MustCompile(`\[\d{1,2}:\d{2}(?:\.\d{1,3})?\]`)
)

// Report holds the result of inspecting a document.
type Report struct {
	TotalLines   int `json:"total_lines"`
	BlankLines   int `json:"blank_lines"`
	TimedLines   int `json:"timed_lines"`
	SkippedLines int `json:"skipped_lines"`

	// Metadata maps known ID tag keys (ti, ar, offset, ...) to their values.
	Metadata map[string]string `json:"metadata,omitempty"`

	// UnknownTags lists bracketed key:value tags the format does not define.
	UnknownTags []string `json:"unknown_tags,omitempty"`

	// MultiTagLines counts lines with more than one timestamp tag. Only the
	// first tag on such lines is used.
	MultiTagLines int `json:"multi_tag_lines"`

	// DuplicateTimestamps counts lines whose timestamp equals the previous one
	// after sorting.
	DuplicateTimestamps int `json:"duplicate_timestamps"`

	// SourceOrdered is true when timestamps already appeared in order.
	SourceOrdered bool `json:"source_ordered"`

	// Coverage is TimedLines / non-blank lines (0.0 to 1.0).
	Coverage float64 `json:"coverage"`

	// FirstMs and LastMs bound the timeline.
	FirstMs int64 `json:"first_ms"`
	LastMs  int64 `json:"last_ms"`

	// Skipped holds up to SampleSize skipped lines for display.
	Skipped []string `json:"skipped,omitempty"`
}

// Inspector analyzes LRC text.
type Inspector struct {
	sampleSize int
}

// Option configures the Inspector.
type Option func(*Inspector)

// WithSampleSize sets how many skipped lines are kept as samples (default 5).
func WithSampleSize(n int) Option {
	return func(i *Inspector) {
		if n >= 0 {
			i.sampleSize = n
		}
	}
}

// New creates a new Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{sampleSize: 5}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// InspectFile loads path (lyric file or audio file with embedded lyrics)
// and inspects its text.
func (i *Inspector) InspectFile(ctx context.Context, path string) (*Report, error) {
	text, err := media.LoadText(ctx, path)
	if err != nil {
		return nil, err
	}
	return i.Inspect(text), nil
}

// Inspect analyzes raw LRC text.
func (i *Inspector) Inspect(raw string) *Report {
	r := &Report{
		Metadata:      make(map[string]string),
		SourceOrdered: true,
	}

	lines := lrc.SplitLines(raw)
	// A trailing terminator does not start another line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	r.TotalLines = len(lines)

	unknown := make(map[string]bool)
	var prev int64 = -1

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			r.BlankLines++
			continue
		}

		single := lrc.Parse(line)
		if single.Len() == 1 {
			r.TimedLines++
			ms := single.At(0).TimeMs
			if ms < prev {
				r.SourceOrdered = false
			}
			prev = ms
			if len(tagRegexp.FindAllString(line, -1)) > 1 {
				r.MultiTagLines++
			}
			continue
		}

		r.SkippedLines++
		if m := metadataRegexp.FindStringSubmatch(trimmed); m != nil {
			key := strings.ToLower(m[1])
			if _, ok := KnownMetadataTags[key]; ok {
				r.Metadata[key] = strings.TrimSpace(m[2])
				continue
			}
			unknown[key] = true
		}
		if len(r.Skipped) < i.sampleSize {
			r.Skipped = append(r.Skipped, line)
		}
	}

	for k := range unknown {
		r.UnknownTags = append(r.UnknownTags, k)
	}
	sort.Strings(r.UnknownTags)

	tl := lrc.Parse(raw)
	for n := 1; n < tl.Len(); n++ {
		if tl.At(n).TimeMs == tl.At(n-1).TimeMs {
			r.DuplicateTimestamps++
		}
	}
	if !tl.IsEmpty() {
		r.FirstMs = tl.At(0).TimeMs
		r.LastMs = tl.LastTime()
	}

	if nonBlank := r.TotalLines - r.BlankLines; nonBlank > 0 {
		r.Coverage = float64(r.TimedLines) / float64(nonBlank)
	}

	return r
}

// HasTimedLines returns true if at least one line carries a timestamp.
func (r *Report) HasTimedLines() bool {
	return r.TimedLines > 0
}

// Offset returns the raw [offset:] value, if present. The parser does not
// apply it.
func (r *Report) Offset() (string, bool) {
	v, ok := r.Metadata["offset"]
	return v, ok
}
