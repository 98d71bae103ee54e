package ui

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/five82/energy/internal/logtail"
)

func (m *Model) initLogViewport() {
	w, h := m.modalSize()
	m.logViewport = viewport.New(w, h)
}

// setLogContent formats the tail of the log file and scrolls to the newest line.
func (m *Model) setLogContent(lines []string, err error) {
	m.logErr = err
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	width := m.logViewport.Width

	var b strings.Builder
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.WriteString(styles.MutedText.Render("No log file yet"))
	case err != nil:
		b.WriteString(styles.DangerText.Render("Cannot read log: " + err.Error()))
	case len(lines) == 0:
		b.WriteString(styles.MutedText.Render("Log is empty"))
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.formatLogLine(logtail.Parse(line), width, styles))
	}
	m.logViewport.SetContent(b.String())
	m.logViewport.GotoBottom()
}

func (m Model) formatLogLine(e logtail.Entry, width int, styles Styles) string {
	if e.Level == "" {
		return styles.Text.Render(truncate(e.Message, width))
	}
	ts := e.Time
	if len(ts) >= 19 {
		// 2006-01-02T15:04:05...
		ts = ts[11:19]
	}
	level := strings.ToUpper(padRight(e.Level, 5))
	if len(level) > 5 {
		level = level[:4]
	}

	var fields strings.Builder
	for _, f := range e.Fields {
		fields.WriteString(" " + f.Key + "=" + f.Value)
	}
	rest := truncate(e.Message+fields.String(), max(width-len(ts)-8, 10))
	return styles.FaintText.Render(ts) + " " +
		styles.LevelStyle(e.Level).Render(level) + " " +
		styles.Text.Render(rest)
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	width, _ := m.modalSize()

	title := styles.Text.Bold(true).Render("Logs")
	if m.logPath != "" {
		title += styles.FaintText.Render("  " + truncateMiddle(m.logPath, max(width-8, 10)))
	}
	footer := styles.MutedText.Render("j/k scroll  r reload  esc close")
	return m.placeModal(title+"\n\n"+m.logViewport.View()+"\n\n"+footer, width+4)
}
