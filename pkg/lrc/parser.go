package lrc

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Parse converts raw LRC text into a Timeline.
// Lines without a timestamp tag, including metadata tags such as [ar:...],
// are skipped. Parse never fails; unusable input yields an empty Timeline.
func Parse(raw string) Timeline {
	var lines []TimedLine

	for _, line := range SplitLines(raw) {
		m, ok := matchTag(line)
		if !ok {
			continue
		}
		lines = append(lines, m.Line())
	}

	sortLines(lines)
	return Timeline{lines: lines}
}

// sortLines orders lines by TimeMs. Lines sharing a timestamp keep their
// relative order.
func sortLines(lines []TimedLine) {
	slices.SortStableFunc(lines, func(a, b TimedLine) int {
		return cmp.Compare(a.TimeMs, b.TimeMs)
	})
}

// ParseReader reads r to the end and parses the content.
// Only read failures and cancellation are reported as errors.
func ParseReader(ctx context.Context, r io.Reader) (Timeline, error) {
	select {
	case <-ctx.Done():
		return Timeline{}, ctx.Err()
	default:
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Timeline{}, fmt.Errorf("reading lyrics: %w", err)
	}

	return Parse(string(data)), nil
}

// SplitLines splits text on \r\n, \n and lone \r terminators.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}
