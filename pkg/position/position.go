// Package position resolves the active lyric line for a playback position
// and formats playback progress.
package position

import (
	"fmt"
	"sort"

	"github.com/ccollicutt/lyricsync/pkg/lrc"
)

// ActiveIndex returns the index of the last line whose TimeMs is at or
// before positionMs. A line stays active until the next line starts, and the
// final line stays active past the end. Returns 0 when no line qualifies,
// including for an empty timeline.
func ActiveIndex(tl lrc.Timeline, positionMs int64) int {
	// First line starting strictly after the position.
	next := sort.Search(tl.Len(), func(i int) bool {
		return tl.At(i).TimeMs > positionMs
	})
	if next == 0 {
		return 0
	}
	return next - 1
}

// Fraction returns positionMs/durationMs, or 0 when the duration is unknown.
// The result is not clamped and exceeds 1 when the position overruns.
func Fraction(positionMs, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(positionMs) / float64(durationMs)
}

// FormatClock renders milliseconds as M:SS. Non-positive values render as 0:00.
func FormatClock(ms int64) string {
	if ms <= 0 {
		return "0:00"
	}
	totalSec := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSec/60, totalSec%60)
}
