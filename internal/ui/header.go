package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
)

// renderMain renders the header, the catalog panel and the command bar.
func (m Model) renderMain() string {
	header := m.renderHeader()
	bar := m.renderCommandBar()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(bar), 3)

	title := "Exercises"
	if m.machine.Mode() == browse.ModeFavorites {
		title = "Favorites"
	}
	body := m.renderTitledBox(title, m.renderCatalog(m.width-2, bodyHeight-2), m.width, bodyHeight, false)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bar)
}

// renderHeader renders the logo, the page tabs and the quote of the day.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newSurface(m.theme.Surface)
	sep := bg.pad(2)

	tab := func(label string, mode browse.Mode) string {
		if m.nav.Active() == mode {
			return bg.paint("["+label+"]", styles.AccentText.Bold(true))
		}
		return bg.paint(" "+label+" ", styles.MutedText)
	}

	left := bg.paint("energy", styles.Logo) + sep +
		tab("Home", browse.ModeHome) + bg.pad(1) +
		tab("Favorites", browse.ModeFavorites)

	if m.hasQuote && m.width >= 60 {
		room := m.width - lipgloss.Width(left) - 6
		if room > 12 {
			quote := truncate("“"+m.quote.Quote+"” - "+m.quote.Author, room)
			left += sep + bg.paint(quote, styles.FaintText.Italic(true))
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(left)
}

// renderCommandBar shows the toast when one is visible, otherwise the key hints
// for the current page.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newSurface(m.theme.Surface)

	if m.toast.visible {
		style := styles.SuccessText
		if m.toast.kind == toastError {
			style = styles.DangerText
		}
		return bg.fill(bg.pad(1)+bg.paint(m.toast.message, style), m.width)
	}

	h := m.help
	h.ShortSeparator = "  "
	h.Styles.ShortKey = bg.base.Foreground(lipgloss.Color(m.theme.Warning))
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.Ellipsis = styles.FaintText
	h.Width = max(m.width-2, 0)
	return bg.fill(bg.pad(1)+h.ShortHelpView(m.contextBindings()), m.width)
}

// contextBindings lists the hints relevant to the catalog state.
func (m Model) contextBindings() []key.Binding {
	view := m.machine.View()
	bindings := []key.Binding{m.keys.TogglePage}
	if view.Mode == browse.ModeHome {
		bindings = append(bindings, m.keys.CycleFilter)
	}
	if view.HasCards() {
		bindings = append(bindings, m.keys.Open)
	}
	if view.ShowSearch {
		bindings = append(bindings, m.keys.Search, m.keys.Back)
	}
	if view.Pagination.Visible() {
		bindings = append(bindings, m.keys.NextPage)
	}
	if view.Mode == browse.ModeFavorites && len(view.Exercises) > 0 {
		bindings = append(bindings, m.keys.Remove)
	}
	if view.Status == browse.StatusFailed {
		bindings = append(bindings, m.keys.Refresh)
	}
	bindings = append(bindings, m.keys.Newsletter)
	return append(bindings, m.keys.ShortHelp()...)
}

// tabLine renders the filter tabs of the home page.
func (m Model) tabLine(view browse.View, styles Styles) string {
	if view.Mode == browse.ModeFavorites {
		return styles.AccentText.Bold(true).Render("Favorites")
	}
	labels := make([]string, 0, 3)
	for i, filter := range catalog.Filters {
		label := strconv.Itoa(i+1) + " " + string(filter)
		if view.Filter == filter {
			labels = append(labels, m.theme.Styles().Selected.Bold(true).Render(" "+label+" "))
		} else {
			labels = append(labels, styles.MutedText.Render(" "+label+" "))
		}
	}
	return strings.Join(labels, " ")
}
