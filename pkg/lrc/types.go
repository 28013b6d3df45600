// Package lrc parses timestamped lyrics (LRC) into an ordered timeline.
package lrc

// TimedLine is a single lyric line with its start time.
type TimedLine struct {
	// TimeMs is the start time of the line in milliseconds.
	TimeMs int64 `json:"time_ms"`

	// Text is the lyric fragment. Empty text marks a gap (e.g. instrumental).
	Text string `json:"text"`
}

// Timeline is an immutable sequence of TimedLine sorted by TimeMs.
// Lines sharing a timestamp keep their source order.
type Timeline struct {
	lines []TimedLine
}

// NewTimeline builds a Timeline from lines in any order. The slice is
// copied and then stable-sorted by TimeMs.
func NewTimeline(lines []TimedLine) Timeline {
	if len(lines) == 0 {
		return Timeline{}
	}
	cp := make([]TimedLine, len(lines))
	copy(cp, lines)
	sortLines(cp)
	return Timeline{lines: cp}
}

// Len returns the number of lines.
func (t Timeline) Len() int {
	return len(t.lines)
}

// IsEmpty returns true if the timeline holds no lines.
func (t Timeline) IsEmpty() bool {
	return len(t.lines) == 0
}

// At returns the line at index i. It panics if i is out of range.
func (t Timeline) At(i int) TimedLine {
	return t.lines[i]
}

// Lines returns a copy of the lines.
func (t Timeline) Lines() []TimedLine {
	cp := make([]TimedLine, len(t.lines))
	copy(cp, t.lines)
	return cp
}

// LastTime returns the timestamp of the final line, or 0 if empty.
func (t Timeline) LastTime() int64 {
	if len(t.lines) == 0 {
		return 0
	}
	return t.lines[len(t.lines)-1].TimeMs
}

// Equal reports whether both timelines hold the same lines in the same order.
func (t Timeline) Equal(other Timeline) bool {
	if len(t.lines) != len(other.lines) {
		return false
	}
	for i := range t.lines {
		if t.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}
