package lrc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParse_Basic(t *testing.T) {
	raw := `[ti:Test Song]
[ar:Someone]
[00:01.00] First line
[00:03.50] Second line
[00:05] Third line
`
	tl := Parse(raw)

	if tl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tl.Len())
	}

	want := []TimedLine{
		{TimeMs: 1000, Text: "First line"},
		{TimeMs: 3500, Text: "Second line"},
		{TimeMs: 5000, Text: "Third line"},
	}
	for i, w := range want {
		if got := tl.At(i); got != w {
			t.Errorf("At(%d) = %+v, want %+v", i, got, w)
		}
	}
}

func TestParse_FractionPadding(t *testing.T) {
	tests := []struct {
		line string
		want int64
	}{
		{"[1:02.5] x", 62500},
		{"[1:02.05] x", 62050},
		{"[1:02] x", 62000},
		{"[1:02.123] x", 62123},
		{"[01:02.12] x", 62120},
		{"[00:00.001] x", 1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tl := Parse(tt.line)
			if tl.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", tl.Len())
			}
			if got := tl.At(0).TimeMs; got != tt.want {
				t.Errorf("TimeMs = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParse_IgnoredLines(t *testing.T) {
	raw := `Artist: Foo
[ar:Foo]
[offset:+500]
plain text
[00:10.00] counted
[0:5] seconds need two digits
[00:11.1234] too many fraction digits
[000:12] three minute digits
[00:20] also counted
`
	tl := Parse(raw)

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (only matching lines count)", tl.Len())
	}
	if tl.At(0).Text != "counted" || tl.At(1).Text != "also counted" {
		t.Errorf("unexpected lines: %+v", tl.Lines())
	}
}

func TestParse_EmptyText(t *testing.T) {
	tl := Parse("[00:10.00]\n[00:12.00]    \n")

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tl.Len())
	}
	for i := 0; i < tl.Len(); i++ {
		if tl.At(i).Text != "" {
			t.Errorf("At(%d).Text = %q, want empty", i, tl.At(i).Text)
		}
	}
}

func TestParse_StableSort(t *testing.T) {
	raw := `[00:03.00] c
[00:02.00] b
[00:01.00] a
[00:02.00] b2
[00:02.00] b3
`
	tl := Parse(raw)

	want := []string{"a", "b", "b2", "b3", "c"}
	if tl.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tl.Len(), len(want))
	}
	for i, w := range want {
		if tl.At(i).Text != w {
			t.Errorf("At(%d).Text = %q, want %q", i, tl.At(i).Text, w)
		}
	}
}

func TestParse_SortedInvariant(t *testing.T) {
	inputs := []string{
		"",
		"[00:05] x\n[00:01] y\n[10:00] z\n[00:00] w",
		"[99:99.999] max\n[0:00] min\n[5:75] overflow seconds",
		"no tags at all\njust text",
	}

	for _, raw := range inputs {
		tl := Parse(raw)
		for i := 1; i < tl.Len(); i++ {
			if tl.At(i).TimeMs < tl.At(i-1).TimeMs {
				t.Errorf("Parse(%q): not sorted at %d: %d < %d", raw, i, tl.At(i).TimeMs, tl.At(i-1).TimeMs)
			}
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	raw := "[00:02] b\n[00:01] a\n[00:02] c\nnoise\n"

	first := Parse(raw)
	second := Parse(raw)

	if !first.Equal(second) {
		t.Errorf("Parse() not idempotent: %+v vs %+v", first.Lines(), second.Lines())
	}
}

func TestParse_LineTerminators(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unix", "[00:01] a\n[00:02] b"},
		{"windows", "[00:01] a\r\n[00:02] b\r\n"},
		{"classic mac", "[00:01] a\r[00:02] b\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Parse(tt.raw)
			if tl.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", tl.Len())
			}
			if tl.At(1).Text != "b" {
				t.Errorf("At(1).Text = %q, want %q", tl.At(1).Text, "b")
			}
		})
	}
}

func TestParse_MultipleTagsHonorsFirst(t *testing.T) {
	tl := Parse("[00:01.00][00:30.00] chorus")

	if tl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tl.Len())
	}
	if tl.At(0).TimeMs != 1000 {
		t.Errorf("TimeMs = %d, want 1000", tl.At(0).TimeMs)
	}
	if tl.At(0).Text != "[00:30.00] chorus" {
		t.Errorf("Text = %q", tl.At(0).Text)
	}
}

func TestParse_OutOfRangeSeconds(t *testing.T) {
	tl := Parse("[01:75] late\n[00:99] later")

	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tl.Len())
	}
	if tl.At(0).TimeMs != 99_000 {
		t.Errorf("At(0).TimeMs = %d, want 99000", tl.At(0).TimeMs)
	}
	if tl.At(1).TimeMs != 135_000 {
		t.Errorf("At(1).TimeMs = %d, want 135000", tl.At(1).TimeMs)
	}
}

func TestParse_Empty(t *testing.T) {
	tl := Parse("")
	if !tl.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
	if tl.LastTime() != 0 {
		t.Errorf("LastTime() = %d, want 0", tl.LastTime())
	}
}

func TestParseReader(t *testing.T) {
	tl, err := ParseReader(context.Background(), strings.NewReader("[00:01] a\n[00:02] b\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if tl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tl.Len())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(context.Background(), failingReader{})
	if err == nil {
		t.Error("ParseReader() expected error")
	}
}

func TestParseReader_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseReader(ctx, strings.NewReader("[00:01] a"))
	if err != context.Canceled {
		t.Errorf("ParseReader() error = %v, want context.Canceled", err)
	}
}

func TestTimeline_LinesIsCopy(t *testing.T) {
	tl := Parse("[00:01] a")
	lines := tl.Lines()
	lines[0].Text = "mutated"

	if tl.At(0).Text != "a" {
		t.Errorf("Timeline mutated through Lines(): %q", tl.At(0).Text)
	}
}

func TestNewTimeline_Copies(t *testing.T) {
	src := []TimedLine{{TimeMs: 1, Text: "a"}}
	tl := NewTimeline(src)
	src[0].Text = "mutated"

	if tl.At(0).Text != "a" {
		t.Errorf("Timeline mutated through source slice: %q", tl.At(0).Text)
	}
}

func TestNewTimeline_SortsUnorderedInput(t *testing.T) {
	src := []TimedLine{
		{TimeMs: 3000, Text: "c"},
		{TimeMs: 1000, Text: "a"},
		{TimeMs: 2000, Text: "b1"},
		{TimeMs: 2000, Text: "b2"},
	}
	tl := NewTimeline(src)

	want := []TimedLine{
		{TimeMs: 1000, Text: "a"},
		{TimeMs: 2000, Text: "b1"},
		{TimeMs: 2000, Text: "b2"},
		{TimeMs: 3000, Text: "c"},
	}
	for i, w := range want {
		if got := tl.At(i); got != w {
			t.Errorf("At(%d) = %+v, want %+v", i, got, w)
		}
	}
	if src[0].TimeMs != 3000 {
		t.Error("NewTimeline reordered the caller's slice")
	}
}
