// Package tui renders a following lyrics view in the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ccollicutt/lyricsync/pkg/config"
	"github.com/ccollicutt/lyricsync/pkg/lrc"
	"github.com/ccollicutt/lyricsync/pkg/playback"
	"github.com/ccollicutt/lyricsync/pkg/position"
)

// OffsetStep is how far one +/- key press moves the sync offset.
const OffsetStep int64 = 100

// Controller is a transport the view can steer.
type Controller interface {
	playback.Transport
	Toggle() bool
	SeekBy(deltaMs int64)
}

type tickMsg time.Time

// Model is the bubbletea model for the follow view.
type Model struct {
	title    string
	timeline lrc.Timeline
	ctrl     Controller

	interval time.Duration
	seekStep int64
	context  int
	styles   styles

	// offsetMs shifts the position used for line lookup. Positive values
	// show lines earlier.
	offsetMs int64
	frame    position.Frame

	width    int
	height   int
	quitting bool
}

// New creates a Model following tl against ctrl.
func New(title string, tl lrc.Timeline, ctrl Controller, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := Model{
		title:    title,
		timeline: tl,
		ctrl:     ctrl,
		interval: cfg.Playback.PollInterval,
		seekStep: cfg.Playback.SeekStep.Milliseconds(),
		context:  cfg.Style.ContextLines,
		styles:   newStyles(cfg.Style),
	}
	if m.interval <= 0 {
		m.interval = playback.DefaultInterval
	}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "space":
			m.ctrl.Toggle()
		case "left", "h":
			m.ctrl.SeekBy(-m.seekStep)
		case "right", "l":
			m.ctrl.SeekBy(m.seekStep)
		case "+", "=":
			m.offsetMs += OffsetStep
		case "-":
			m.offsetMs -= OffsetStep
		case "0":
			m.offsetMs = 0
		default:
			return m, nil
		}
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tick()
	}

	return m, nil
}

// refresh resolves the current frame from the transport.
func (m *Model) refresh() {
	pos := m.ctrl.PositionMs()
	dur := m.ctrl.DurationMs()

	f := position.Resolve(m.timeline, max(pos+m.offsetMs, 0), dur)
	// Clock label and progress track the transport, not the shifted lookup.
	f.PositionMs = pos
	f.Fraction = position.Fraction(pos, dur)
	f.Elapsed = position.FormatClock(pos)
	m.frame = f
}

// Frame returns the most recently resolved frame.
func (m Model) Frame() position.Frame {
	return m.frame
}

// OffsetMs returns the current sync offset.
func (m Model) OffsetMs() int64 {
	return m.offsetMs
}
