package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/lyricsync/pkg/config"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	helpText      = "space play/pause • ←/→ seek • +/- sync • 0 reset • q quit"
)

type styles struct {
	title  lipgloss.Style
	active lipgloss.Style
	near   lipgloss.Style
	dim    lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

func newStyles(s config.StyleConfig) styles {
	active := lipgloss.Color(s.ActiveColor)
	dim := lipgloss.Color(s.DimColor)
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(active),
		active: lipgloss.NewStyle().Bold(true).Foreground(active).Align(lipgloss.Center),
		near:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Center),
		dim:    lipgloss.NewStyle().Foreground(dim).Align(lipgloss.Center),
		status: lipgloss.NewStyle().Foreground(dim),
		help:   lipgloss.NewStyle().Foreground(dim).Italic(true),
	}
}

// View renders the lyric window, progress bar and help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	var lines []string
	if m.title != "" {
		lines = append(lines, m.styles.title.Render(m.title), "")
	}

	body := m.lyricLines(width)
	// title, blank, body, blank, status, progress, help
	pad := height - len(lines) - len(body) - 4
	for i := 0; i < pad/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, body...)
	for i := 0; i < pad-pad/2; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, "", m.statusLine(), m.progressBar(width), m.styles.help.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) lyricLines(width int) []string {
	if m.timeline.IsEmpty() {
		return []string{m.styles.dim.Width(width).Render("No lyrics loaded")}
	}

	var out []string
	for i := m.frame.Index - m.context; i <= m.frame.Index+m.context; i++ {
		if i < 0 || i >= m.timeline.Len() {
			out = append(out, "")
			continue
		}
		text := m.timeline.At(i).Text
		if text == "" {
			text = "♪"
		}
		style := m.styles.dim
		switch d := i - m.frame.Index; {
		case d == 0:
			style = m.styles.active
		case d == -1 || d == 1:
			style = m.styles.near
		}
		out = append(out, style.Width(width).Render(text))
	}
	return out
}

func (m Model) statusLine() string {
	state := "paused"
	if m.ctrl.Playing() {
		state = "playing"
	}

	label := m.frame.Elapsed
	if m.frame.DurationMs > 0 {
		label = fmt.Sprintf("%s / %s", m.frame.Elapsed, m.frame.Total)
	}
	if m.offsetMs != 0 {
		label += fmt.Sprintf("  sync %+.1fs", float64(m.offsetMs)/1000)
	}
	return m.styles.status.Render(fmt.Sprintf("%s  %s", state, label))
}

// progressBar draws a bar whose fill is clamped to the bar width. The
// percentage label shows the raw fraction.
func (m Model) progressBar(width int) string {
	if m.frame.DurationMs <= 0 {
		return ""
	}

	pct := fmt.Sprintf(" %5.1f%%", m.frame.Fraction*100)
	barWidth := width - len(pct) - 2
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(m.frame.Fraction * float64(barWidth))
	filled = min(max(filled, 0), barWidth)

	bar := m.styles.active.UnsetAlign().Render(strings.Repeat("█", filled)) +
		m.styles.dim.UnsetAlign().Render(strings.Repeat("░", barWidth-filled))
	return "[" + bar + "]" + pct
}
