package lrc

import (
	"regexp"
	"strconv"
	"strings"
)

// TagPattern matches a line timestamp tag and captures minutes, seconds,
// optional fraction digits and the remaining text.
const TagPattern = `\[(\d{1,2}):(\d{2})(?:\.(\d{1,3}))?\]\s*(.*)`

var tagRegexp = regexp.MustCompile(TagPattern)

// tagMatch holds the captured parts of a timestamp tag before conversion.
type tagMatch struct {
	Minutes  string
	Seconds  string
	Fraction string
	Text     string
}

// matchTag finds the first timestamp tag on a line.
// Returns false if the line carries no recognizable tag.
func matchTag(line string) (tagMatch, bool) {
	m := tagRegexp.FindStringSubmatch(line)
	if m == nil {
		return tagMatch{}, false
	}
	return tagMatch{
		Minutes:  m[1],
		Seconds:  m[2],
		Fraction: m[3],
		Text:     m[4],
	}, true
}

// Millis converts the tag to milliseconds. Fraction digits are right-padded
// to three places, so ".5" is 500ms and ".05" is 50ms. Seconds are not range
// checked.
func (m tagMatch) Millis() int64 {
	// Digit counts are bounded by the pattern, so these cannot fail.
	minutes, _ := strconv.ParseInt(m.Minutes, 10, 64)
	seconds, _ := strconv.ParseInt(m.Seconds, 10, 64)

	var fraction int64
	if m.Fraction != "" {
		digits := m.Fraction + strings.Repeat("0", 3-len(m.Fraction))
		fraction, _ = strconv.ParseInt(digits, 10, 64)
	}

	return minutes*60_000 + seconds*1_000 + fraction
}

// Line converts the tag into a TimedLine with trimmed text.
func (m tagMatch) Line() TimedLine {
	return TimedLine{
		TimeMs: m.Millis(),
		Text:   strings.TrimSpace(m.Text),
	}
}
