package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints text onto one background color. Styled segments reset the
// background after each word, so spaces are painted separately.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type surface struct {
	base lipgloss.Style
}

func newSurface(color string) surface {
	return surface{base: lipgloss.NewStyle().Background(lipgloss.Color(color))}
}

// paint renders text in style with every cell, spaces included, on the
// surface color.
func (s surface) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(s.base.GetBackground())
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, s.base.Render(" "))
}

// pad returns n background cells.
func (s surface) pad(n int) string {
	if n <= 0 {
		return ""
	}
	return s.base.Render(strings.Repeat(" ", n))
}

// fill stretches content to exactly width cells.
func (s surface) fill(content string, width int) string {
	return s.base.Width(width).MaxWidth(width).Render(content)
}
