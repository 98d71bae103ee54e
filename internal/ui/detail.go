package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/energy/internal/detail"
)

func (m *Model) initDetailViewport() {
	w, h := m.modalSize()
	m.detailViewport = viewport.New(w, h)
}

func (m *Model) resizeOverlays() {
	w, h := m.modalSize()
	m.detailViewport.Width = w
	m.detailViewport.Height = h
	m.logViewport.Width = w
	m.logViewport.Height = h
}

// updateDetailViewport rebuilds the overlay body. The description is
// rendered as markdown once per change rather than on every frame.
func (m *Model) updateDetailViewport() {
	if !m.ready || !m.detail.IsOpen() {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detail.View(), m.detailViewport.Width))
	m.detailViewport.GotoTop()
}

func (m Model) detailContent(v detail.View, width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	if v.State != detail.StateLoaded {
		return styles.MutedText.Render(v.Description)
	}

	label := func(name, value string) string {
		if value == "" {
			value = "-"
		}
		return styles.MutedText.Render(name+": ") + styles.Text.Render(titleWord(value))
	}

	filled, empty := stars(v.Stars)
	lines := []string{
		styles.Text.Render(v.RatingLabel+" ") + styles.StarText.Render(filled) + styles.FaintText.Render(empty),
		"",
		label("Target", v.Target) + "   " + label("Body part", v.BodyPart),
		label("Equipment", v.Equipment) + "   " + label("Popular", v.Popularity),
		label("Burned calories", v.Calories+v.TimeLabel),
	}
	if v.ImageURL != "" {
		lines = append(lines, styles.FaintText.Render(truncateMiddle(v.ImageURL, width)))
	}
	if desc := renderMarkdown(v.Description, width); desc != "" {
		lines = append(lines, "", desc)
	}
	return strings.Join(lines, "\n")
}

// renderMarkdown renders the exercise description, falling back to plain text.
func renderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(md)
	}
	return strings.Trim(out, "\n")
}

// titleWord uppercases the first letter of a lowercase API value.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// renderDetail renders the exercise overlay.
func (m Model) renderDetail() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	v := m.detail.View()
	width, _ := m.modalSize()

	title := styles.Text.Bold(true).Render(v.Title)
	switch v.State {
	case detail.StateLoading:
		title = m.spinner.View() + " " + styles.MutedText.Render(v.Title)
	case detail.StateFailed:
		title = styles.DangerText.Render(v.Title)
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	footer := keyStyle.Render("esc") + styles.MutedText.Render(" Close")
	if v.State == detail.StateLoaded {
		footer = keyStyle.Render("a") + styles.MutedText.Render(" "+v.FavoriteLabel+"  ") +
			keyStyle.Render("r") + styles.MutedText.Render(" Give a rating  ") + footer
	}

	content := title + "\n\n" + m.detailViewport.View() + "\n\n" + footer
	return m.placeModal(content, width+4)
}
