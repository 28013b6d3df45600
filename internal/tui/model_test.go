package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccollicutt/lyricsync/pkg/config"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/playback"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestModel(t *testing.T, durationMs int64, lines ...lrc.TimedLine) (Model, *playback.Clock, *fakeClock) {
	t.Helper()
	fc := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	clock := playback.NewClock(durationMs, playback.WithNow(fc.Now))
	m := New("Test Song", lrc.NewTimeline(lines), clock, config.DefaultConfig())
	return m, clock, fc
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

var sample = []lrc.TimedLine{
	{TimeMs: 1000, Text: "one"},
	{TimeMs: 6000, Text: "two"},
	{TimeMs: 11_000, Text: "three"},
}

func TestModel_TickFollowsClock(t *testing.T) {
	m, clock, fc := newTestModel(t, 20_000, sample...)

	clock.Play()
	fc.now = fc.now.Add(7 * time.Second)

	next, cmd := m.Update(tickMsg(fc.now))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Frame().Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
	if got := m.Frame().Elapsed; got != "0:07" {
		t.Errorf("Elapsed = %q, want 0:07", got)
	}
}

func TestModel_SpaceAfterEndReplays(t *testing.T) {
	m, clock, fc := newTestModel(t, 20_000, sample...)

	clock.Play()
	fc.now = fc.now.Add(25 * time.Second)
	m = update(t, m, tickMsg(fc.now))
	if got := m.Frame().Index; got != 2 {
		t.Errorf("Index at end = %d, want 2", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !clock.Playing() {
		t.Fatal("one space press after the end should replay")
	}
	if got := m.Frame().PositionMs; got != 0 {
		t.Errorf("PositionMs = %d, want 0", got)
	}
}

func TestModel_Keys(t *testing.T) {
	m, clock, _ := newTestModel(t, 20_000, sample...)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !clock.Playing() {
		t.Error("space should start playback")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if clock.Playing() {
		t.Error("second space should pause playback")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := clock.PositionMs(); got != 5000 {
		t.Errorf("after right PositionMs() = %d, want 5000", got)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := clock.PositionMs(); got != 5000 {
		t.Errorf("after right+left PositionMs() = %d, want 5000", got)
	}
	if got := m.Frame().Index; got != 0 {
		t.Errorf("Index at 5000 = %d, want 0", got)
	}

	for i := 0; i < 10; i++ {
		m = update(t, m, keyRunes("+"))
	}
	if m.OffsetMs() != 1000 {
		t.Errorf("OffsetMs() = %d, want 1000", m.OffsetMs())
	}
	if got := m.Frame().Index; got != 1 {
		t.Errorf("Index with +1s offset = %d, want 1", got)
	}
	if got := m.Frame().Elapsed; got != "0:05" {
		t.Errorf("Elapsed should ignore offset, got %q", got)
	}

	m = update(t, m, keyRunes("-"))
	if m.OffsetMs() != 900 {
		t.Errorf("OffsetMs() = %d, want 900", m.OffsetMs())
	}
	m = update(t, m, keyRunes("0"))
	if m.OffsetMs() != 0 {
		t.Errorf("OffsetMs() after reset = %d, want 0", m.OffsetMs())
	}
}

func TestModel_NegativeOffsetClampsLookup(t *testing.T) {
	m, _, _ := newTestModel(t, 0, sample...)

	m = update(t, m, keyRunes("-"))
	if got := m.Frame().Index; got != 0 {
		t.Errorf("Index = %d, want 0", got)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t, 0, sample...)

	next, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModel_View(t *testing.T) {
	m, clock, _ := newTestModel(t, 20_000, sample...)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	clock.Seek(6500)
	m = update(t, m, tickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"Test Song", "one", "two", "three", "paused", "0:06 / 0:20", "32.5%", helpText} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_View_Empty(t *testing.T) {
	m, _, _ := newTestModel(t, 0)

	view := m.View()
	if !strings.Contains(view, "No lyrics loaded") {
		t.Errorf("View() missing empty notice:\n%s", view)
	}
	if m.progressBar(80) != "" {
		t.Error("progress bar should be hidden without a duration")
	}
}

func TestModel_ProgressBarClamped(t *testing.T) {
	m, _, _ := newTestModel(t, 1000, sample...)
	m.frame.DurationMs = 1000
	m.frame.Fraction = 1.5

	bar := m.progressBar(40)
	if strings.Contains(bar, "░") {
		t.Errorf("bar should be full:\n%s", bar)
	}
	if !strings.Contains(bar, "150.0%") {
		t.Errorf("percentage should be unclamped:\n%s", bar)
	}

	m.frame.Fraction = -0.5
	bar = m.progressBar(40)
	if strings.Contains(bar, "█") {
		t.Errorf("bar should be empty:\n%s", bar)
	}
}
