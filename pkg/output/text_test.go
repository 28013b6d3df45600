package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ccollicutt/lyricsync/pkg/inspect"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
)

func testTimeline() lrc.Timeline {
	return lrc.NewTimeline([]lrc.TimedLine{
		{TimeMs: 1000, Text: "first"},
		{TimeMs: 12_340, Text: ""},
		{TimeMs: 75_500, Text: "last"},
	})
}

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"text", "json"} {
		f, err := New(name, FormatOptions{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, f.Name())
		}
	}

	if _, err := New("yaml", FormatOptions{}); err == nil {
		t.Error("New(yaml) expected error")
	}
}

func TestStamp(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "[00:00.00]"},
		{1000, "[00:01.00]"},
		{12_345, "[00:12.34]"},
		{75_500, "[01:15.50]"},
		{-5, "[00:00.00]"},
	}

	for _, tt := range tests {
		if got := Stamp(tt.ms); got != tt.want {
			t.Errorf("Stamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestNewTimelineReport(t *testing.T) {
	r := NewTimelineReport("song.lrc", testTimeline())

	if r.Summary.Lines != 3 {
		t.Errorf("Lines = %d, want 3", r.Summary.Lines)
	}
	if r.Summary.EmptyLines != 1 {
		t.Errorf("EmptyLines = %d, want 1", r.Summary.EmptyLines)
	}
	if r.Summary.First != "0:01" || r.Summary.Last != "1:15" {
		t.Errorf("range = %s..%s, want 0:01..1:15", r.Summary.First, r.Summary.Last)
	}
	if r.Entries[2].Stamp != "[01:15.50]" {
		t.Errorf("Entries[2].Stamp = %q", r.Entries[2].Stamp)
	}

	empty := NewTimelineReport("none.lrc", lrc.Timeline{})
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty timeline")
	}
	if empty.Summary.First != "0:00" {
		t.Errorf("empty First = %q, want 0:00", empty.Summary.First)
	}
}

func TestTextFormatter_FormatTimeline(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	if err := f.FormatTimeline(context.Background(), NewTimelineReport("song.lrc", testTimeline()), &buf); err != nil {
		t.Fatalf("FormatTimeline() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"=== Timeline: song.lrc ===",
		"[00:01.00]  first",
		"[00:12.34]  ♪",
		"Summary: 3 lines, 0:01 to 1:15",
		"Empty lines: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_FormatTimeline_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.FormatTimeline(context.Background(), NewTimelineReport("x.lrc", lrc.Timeline{}), &buf); err != nil {
		t.Fatalf("FormatTimeline() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No timed lines found") {
		t.Errorf("output missing empty notice:\n%s", buf.String())
	}
}

func TestTextFormatter_FormatTimeline_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.FormatTimeline(context.Background(), NewTimelineReport("song.lrc", testTimeline()), &buf); err != nil {
		t.Fatalf("FormatTimeline() error = %v", err)
	}

	want := "song.lrc: 3 lines, 0:01 to 1:15\n"
	if buf.String() != want {
		t.Errorf("quiet output = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_FormatFrames(t *testing.T) {
	report := NewFramesReport("song.lrc", testTimeline(), 100_000, []int64{500, 13_000, 200_000})

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).FormatFrames(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatFrames() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"0:00 / 1:40 (0.5%)  #0 [00:01.00] first",
		"0:13 / 1:40 (13.0%)  #1",
		"3:20 / 1:40 (200.0%)  #2 [01:15.50] last",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_FormatFrames_NoLyrics(t *testing.T) {
	report := NewFramesReport("empty.lrc", lrc.Timeline{}, 0, []int64{5000})

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Quiet: true}).FormatFrames(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatFrames() error = %v", err)
	}
	if buf.String() != "0:05  (no lyrics)\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTextFormatter_FormatFrames_Quiet(t *testing.T) {
	report := NewFramesReport("song.lrc", testTimeline(), 0, []int64{80_000})

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Quiet: true}).FormatFrames(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatFrames() error = %v", err)
	}
	if buf.String() != "last\n" {
		t.Errorf("quiet output = %q, want %q", buf.String(), "last\n")
	}
}

func TestTextFormatter_FormatInspection(t *testing.T) {
	raw := "[ti:Song]\n[offset:+250]\n[00:02.00] b\n[00:01.00] a\nnot timed\n"
	report := &InspectionReport{Source: "song.lrc", Report: inspect.New().Inspect(raw)}

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Verbose: true}).FormatInspection(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatInspection() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"=== Lyrics Inspection ===",
		"File: song.lrc",
		"Title:",
		"Song",
		"[offset:] is reported only",
		"out of order",
		"Skipped lines (sample):",
		"not timed",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_FormatInspection_NoTimedLines(t *testing.T) {
	report := &InspectionReport{Source: "plain.txt", Report: inspect.New().Inspect("just words\nmore words\n")}

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).FormatInspection(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatInspection() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No timestamped lines found.") {
		t.Errorf("output missing notice:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Tip: lines need a tag like [01:23.45]") {
		t.Errorf("output missing tip:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "start with") {
		t.Errorf("tip claims the tag must lead the line:\n%s", buf.String())
	}
}
