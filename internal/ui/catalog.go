package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/prefs"
)

const (
	gridCardWidth = 34
	gridGap       = 1
)

// renderCatalog renders the inside of the catalog panel.
func (m Model) renderCatalog(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	view := m.machine.View()

	head := []string{
		m.tabLine(view, styles),
		m.breadcrumbLine(view, styles),
	}
	if view.ShowSearch {
		head = append(head, m.searchLine(view, styles))
	}
	head = append(head, "")

	var foot []string
	if bar := m.paginationLine(view.Pagination, styles); bar != "" {
		foot = append(foot, "", bar)
	}

	bodyHeight := max(height-len(head)-len(foot), 1)
	body := m.renderCards(view, width, bodyHeight, styles)

	lines := append(head, body)
	lines = append(lines, foot...)
	return strings.Join(lines, "\n")
}

func (m Model) breadcrumbLine(view browse.View, styles Styles) string {
	parts := make([]string, len(view.Breadcrumbs))
	for i, crumb := range view.Breadcrumbs {
		if i == len(view.Breadcrumbs)-1 {
			parts[i] = styles.Text.Bold(true).Render(crumb)
		} else {
			parts[i] = styles.MutedText.Render(crumb)
		}
	}
	return strings.Join(parts, styles.FaintText.Render(" / "))
}

func (m Model) searchLine(view browse.View, styles Styles) string {
	label := styles.MutedText.Render("Search: ")
	if m.searching {
		return label + m.searchInput.View()
	}
	if view.Keyword == "" {
		return label + styles.FaintText.Render("press / to search")
	}
	return label + styles.Text.Render(view.Keyword)
}

// renderCards renders the message for empty, loading and failed states, or
// the cards of the current page.
func (m Model) renderCards(view browse.View, width, height int, styles Styles) string {
	if !view.HasCards() {
		var b strings.Builder
		switch view.Status {
		case browse.StatusLoading:
			b.WriteString(m.spinner.View() + " " + styles.MutedText.Render(view.Message))
		case browse.StatusFailed:
			b.WriteString(styles.DangerText.Render(view.Message))
			if view.Detail != "" {
				b.WriteString("\n" + styles.FaintText.Render(truncate(view.Detail, width)))
			}
		default:
			b.WriteString(lipgloss.NewStyle().Width(width).Render(styles.MutedText.Render(view.Message)))
		}
		return b.String()
	}

	n := len(view.Categories) + len(view.Exercises)
	selected := clamp(m.selected, 0, n-1)

	var blocks []string
	for i, card := range view.Categories {
		blocks = append(blocks, m.renderCategoryCard(card, i == selected, width, styles))
	}
	for i, card := range view.Exercises {
		blocks = append(blocks, m.renderExerciseCard(card, i == selected, width, styles))
	}

	cols := 1
	if m.layout == prefs.LayoutGrid {
		cols = max(width/(gridCardWidth+gridGap), 1)
	}
	rows := make([]string, 0, (len(blocks)+cols-1)/cols)
	for start := 0; start < len(blocks); start += cols {
		end := min(start+cols, len(blocks))
		row := make([]string, 0, 2*(end-start))
		for i, block := range blocks[start:end] {
			if i > 0 {
				row = append(row, strings.Repeat(" ", gridGap))
			}
			row = append(row, block)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	content := windowRows(rows, selected/cols, height)
	if view.Status == browse.StatusLoading {
		content = m.spinner.View() + " " + styles.MutedText.Render(browse.LoadingText) + "\n" + content
	}
	return content
}

// windowRows keeps the selected row visible within height lines.
func windowRows(rows []string, selected, height int) string {
	if len(rows) == 0 {
		return ""
	}
	selected = clamp(selected, 0, len(rows)-1)
	start := 0
	for {
		used := 0
		for i := start; i <= selected; i++ {
			used += lipgloss.Height(rows[i])
		}
		if used <= height || start == selected {
			break
		}
		start++
	}

	var out []string
	used := 0
	for _, row := range rows[start:] {
		h := lipgloss.Height(row)
		if used+h > height && len(out) > 0 {
			break
		}
		out = append(out, row)
		used += h
	}
	return strings.Join(out, "\n")
}

func (m Model) renderCategoryCard(card browse.CategoryCard, selected bool, width int, styles Styles) string {
	filter := m.theme.Styles().FilterStyle(card.Filter)
	if m.layout == prefs.LayoutGrid {
		body := styles.Text.Bold(true).Render(truncate(card.Title, gridCardWidth-4)) + "\n" +
			filter.Render(card.Filter)
		return m.gridCard(body, selected)
	}

	marker := "  "
	if selected {
		marker = "▸ "
	}
	line := marker + padRight(truncate(card.Title, 32), 34) + filter.Render(card.Filter)
	if selected {
		return m.theme.Styles().Selected.Width(width).Render(line)
	}
	return line
}

func (m Model) renderExerciseCard(card browse.ExerciseCard, selected bool, width int, styles Styles) string {
	filled, empty := stars(card.Stars)
	badge := styles.Badge.Render("WORKOUT")
	rating := styles.Text.Render(card.RatingLabel+" ") + styles.StarText.Render(filled) + styles.FaintText.Render(empty)
	stats := fmt.Sprintf("Burned calories: %d / %d min", card.BurnedCalories, card.Time)
	parts := fmt.Sprintf("Body part: %s · Target: %s", card.BodyPart, card.Target)

	action := styles.AccentText.Render("Start →")
	if card.Removable {
		action = styles.DangerText.Render("x Remove") + "  " + action
	}

	if m.layout == prefs.LayoutGrid {
		inner := gridCardWidth - 4
		body := strings.Join([]string{
			badge + " " + rating,
			styles.Text.Bold(true).Render(truncate(card.Title, inner)),
			styles.MutedText.Render(truncate(stats, inner)),
			styles.MutedText.Render(truncate(parts, inner)),
			action,
		}, "\n")
		return m.gridCard(body, selected)
	}

	marker := "  "
	if selected {
		marker = "▸ "
	}
	first := marker + badge + " " + rating + "  " + styles.Text.Bold(true).Render(truncate(card.Title, max(width-40, 10))) + "  " + action
	second := "    " + styles.MutedText.Render(truncate(stats+" · "+parts, max(width-4, 10)))
	if selected {
		sel := m.theme.Styles().Selected.Width(width)
		return sel.Render(first) + "\n" + sel.Render(second)
	}
	return first + "\n" + second
}

func (m Model) gridCard(body string, selected bool) string {
	border := m.theme.Border
	if selected {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(gridCardWidth - 2).
		Render(body)
}

// paginationLine renders « ‹ 1 2 3 … 9 › ». Arrows that cannot move are dimmed.
func (m Model) paginationLine(p browse.Pagination, styles Styles) string {
	if !p.Visible() {
		return ""
	}
	arrow := func(label string, enabled bool) string {
		if enabled {
			return styles.AccentText.Render(label)
		}
		return styles.FaintText.Render(label)
	}

	parts := []string{arrow("«", p.CanFirst()), arrow("‹", p.CanFirst())}
	for _, item := range p.Items {
		switch {
		case item.Ellipsis:
			parts = append(parts, styles.FaintText.Render("…"))
		case item.Current:
			parts = append(parts, styles.AccentText.Bold(true).Underline(true).Render(strconv.Itoa(item.Page)))
		default:
			parts = append(parts, styles.MutedText.Render(strconv.Itoa(item.Page)))
		}
	}
	parts = append(parts, arrow("›", p.CanLast()), arrow("»", p.CanLast()))
	return strings.Join(parts, " ")
}
