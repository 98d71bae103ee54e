package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTitledBox renders a bordered box with the title embedded in the top border.
// ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := newSurface(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.paint("┌", borderStyle) +
		bg.paint(strings.Repeat("─", leftPad), borderStyle) +
		bg.paint(" "+title+" ", titleStyle) +
		bg.paint(strings.Repeat("─", rightPad), borderStyle) +
		bg.paint("┐", borderStyle)

	bottomBorder := bg.paint("└", borderStyle) +
		bg.paint(strings.Repeat("─", innerWidth), borderStyle) +
		bg.paint("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.paint("│", borderStyle)+
				contentStyle.Render(line)+
				bg.paint("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// placeModal centers a bordered modal over the whole screen.
func (m Model) placeModal(content string, width int) string {
	width = min(width, max(m.width-4, 10))
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		BorderBackground(lipgloss.Color(m.theme.FocusBg)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// modalSize returns the content size used by scrolling overlays.
func (m Model) modalSize() (width, height int) {
	width = clamp(m.width-10, 20, 76)
	height = clamp(m.height-10, 5, 30)
	return width, height
}
