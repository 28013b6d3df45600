package position

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ccollicutt/lyricsync/pkg/lrc"
)

// Frame is the resolved view of a single poll tick.
type Frame struct {
	PositionMs int64   `json:"position_ms"`
	DurationMs int64   `json:"duration_ms"`
	Index      int     `json:"index"`
	Fraction   float64 `json:"fraction"`
	Elapsed    string  `json:"elapsed"`
	Total      string  `json:"total"`

	// Line is the active line, nil when the timeline is empty.
	Line *lrc.TimedLine `json:"line,omitempty"`
}

// Resolve computes the Frame for a position against a timeline.
func Resolve(tl lrc.Timeline, positionMs, durationMs int64) Frame {
	f := Frame{
		PositionMs: positionMs,
		DurationMs: durationMs,
		Index:      ActiveIndex(tl, positionMs),
		Fraction:   Fraction(positionMs, durationMs),
		Elapsed:    FormatClock(positionMs),
		Total:      FormatClock(durationMs),
	}
	if !tl.IsEmpty() {
		line := tl.At(f.Index)
		f.Line = &line
	}
	return f
}

var clockRegexp = regexp.MustCompile(`^(\d+):(\d{2})(?:\.(\d{1,3}))?$`)

// maxClockMinutes keeps minutes*60_000 plus the largest seconds part
// within int64.
const maxClockMinutes = (math.MaxInt64 - 59_999) / 60_000

// ParseClock parses a position given as plain milliseconds ("75000"),
// M:SS ("1:15") or M:SS.fff ("1:15.250").
func ParseClock(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty position")
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative position %q", s)
		}
		return ms, nil
	}

	m := clockRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid position %q (use milliseconds, M:SS or M:SS.fff)", s)
	}

	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	if minutes > maxClockMinutes {
		return 0, fmt.Errorf("minutes out of range in %q", s)
	}
	seconds, _ := strconv.ParseInt(m[2], 10, 64)
	if seconds > 59 {
		return 0, fmt.Errorf("seconds out of range in %q", s)
	}

	var fraction int64
	if m[3] != "" {
		fraction, _ = strconv.ParseInt(m[3]+strings.Repeat("0", 3-len(m[3])), 10, 64)
	}

	return minutes*60_000 + seconds*1_000 + fraction, nil
}
