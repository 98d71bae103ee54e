package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/energy/internal/newsletter"
	"github.com/five82/energy/internal/rating"
)

const formWidth = 48

// Rating form fields in focus order.
const (
	fieldRate = iota
	fieldEmail
	fieldReview
	fieldCount
)

type newsletterForm struct {
	input      textinput.Model
	fieldErr   string
	submitting bool
}

type ratingForm struct {
	exerciseID string
	rate       int
	email      textinput.Model
	review     textinput.Model
	focus      int
	errs       map[string]string
	submitting bool
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

func newEmailInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Email"
	ti.Prompt = ""
	ti.CharLimit = 254
	ti.Width = formWidth - 8
	return ti
}

func newRatingForm() ratingForm {
	review := textinput.New()
	review.Placeholder = "Your comment"
	review.Prompt = ""
	review.CharLimit = 500
	review.Width = formWidth - 8
	return ratingForm{email: newEmailInput(), review: review}
}

// openNewsletter shows the subscription form.
func (m *Model) openNewsletter() tea.Cmd {
	if m.newsletter == nil {
		return nil
	}
	m.active = overlayNewsletter
	m.newsletterForm.fieldErr = ""
	return m.newsletterForm.input.Focus()
}

func (m Model) handleNewsletterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &m.newsletterForm
	switch {
	case key.Matches(msg, m.keys.Escape):
		form.input.Blur()
		m.active = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if form.submitting {
			return m, nil
		}
		email := form.input.Value()
		if fieldErr := m.newsletter.Check(email); fieldErr != "" {
			form.fieldErr = fieldErr
			return m, nil
		}
		form.fieldErr = ""
		form.submitting = true
		return m, tea.Batch(subscribeCmd(m.ctx, m.newsletter, email), m.startSpinner())
	}

	var cmd tea.Cmd
	form.input, cmd = form.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubscribeDone(out newsletter.Outcome) (tea.Model, tea.Cmd) {
	form := &m.newsletterForm
	form.submitting = false
	if out.FieldError != "" {
		form.fieldErr = out.FieldError
		return m, nil
	}
	if !out.OK {
		return m, m.showToast(out.Message, toastError)
	}
	form.input.Reset()
	form.input.Blur()
	if m.active == overlayNewsletter {
		m.active = overlayNone
	}
	return m, m.showToast(out.Message, toastSuccess)
}

// openRating shows the rating form for exercise id.
func (m *Model) openRating(id string) tea.Cmd {
	if m.rating == nil || id == "" {
		return nil
	}
	form := &m.ratingForm
	if form.exerciseID != id {
		form.rate = 0
		form.review.Reset()
	}
	form.exerciseID = id
	form.errs = nil
	form.focus = fieldRate
	m.active = overlayRating
	return form.focusField()
}

func (f *ratingForm) focusField() tea.Cmd {
	f.email.Blur()
	f.review.Blur()
	switch f.focus {
	case fieldEmail:
		return f.email.Focus()
	case fieldReview:
		return f.review.Focus()
	}
	return nil
}

func (f ratingForm) value() rating.Form {
	return rating.Form{
		ExerciseID: f.exerciseID,
		Rate:       f.rate,
		Email:      f.email.Value(),
		Review:     f.review.Value(),
	}
}

func (m Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &m.ratingForm
	switch {
	case key.Matches(msg, m.keys.Escape):
		form.email.Blur()
		form.review.Blur()
		m.active = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		form.focus = (form.focus + 1) % fieldCount
		return m, form.focusField()

	case key.Matches(msg, m.keys.PrevField):
		form.focus = (form.focus + fieldCount - 1) % fieldCount
		return m, form.focusField()

	case key.Matches(msg, m.keys.Submit):
		if form.submitting {
			return m, nil
		}
		value := form.value()
		if errs := m.rating.Check(value); len(errs) > 0 {
			form.errs = errs
			return m, nil
		}
		form.errs = nil
		form.submitting = true
		return m, tea.Batch(rateCmd(m.ctx, m.rating, value), m.startSpinner())
	}

	if form.focus == fieldRate {
		switch s := msg.String(); s {
		case "left", "h", "-":
			form.rate = clamp(form.rate-1, 0, rating.MaxRate)
		case "right", "l", "+":
			form.rate = clamp(form.rate+1, 0, rating.MaxRate)
		case "1", "2", "3", "4", "5":
			form.rate, _ = strconv.Atoi(s)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if form.focus == fieldEmail {
		form.email, cmd = form.email.Update(msg)
	} else {
		form.review, cmd = form.review.Update(msg)
	}
	return m, cmd
}

func (m Model) handleRatingDone(out rating.Outcome) (tea.Model, tea.Cmd) {
	form := &m.ratingForm
	form.submitting = false
	if len(out.Fields) > 0 {
		form.errs = out.Fields
		return m, nil
	}
	if !out.OK {
		return m, m.showToast(out.Message, toastError)
	}
	form.exerciseID = ""
	form.rate = 0
	form.email.Reset()
	form.review.Reset()
	form.email.Blur()
	form.review.Blur()
	if m.active == overlayRating {
		m.active = overlayNone
	}
	return m, m.showToast(out.Message, toastSuccess)
}

func (m Model) renderNewsletter() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	form := m.newsletterForm

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Get the latest exercises"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Subscribe to the newsletter"))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Email", form.input.View(), true, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldError(form.fieldErr, styles))
	b.WriteString("\n")
	b.WriteString(m.formFooter(form.submitting, "Send", styles))

	return m.placeModal(b.String(), formWidth)
}

func (m Model) renderRating() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	form := m.ratingForm

	filled, empty := stars(form.rate)
	rateValue := styles.StarText.Render(filled) + styles.FaintText.Render(empty) +
		styles.Text.Render(" "+strconv.Itoa(form.rate)+".0")

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Rating"))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Rate", rateValue, form.focus == fieldRate, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldError(form.errs["rate"], styles))
	b.WriteString("\n")
	b.WriteString(m.renderField("Email", form.email.View(), form.focus == fieldEmail, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldError(form.errs["email"], styles))
	b.WriteString("\n")
	b.WriteString(m.renderField("Comment", form.review.View(), form.focus == fieldReview, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldError(form.errs["review"], styles))
	b.WriteString("\n")
	b.WriteString(m.formFooter(form.submitting, "Send", styles))

	return m.placeModal(b.String(), formWidth)
}

func (m Model) renderField(label, value string, focused bool, styles Styles) string {
	labelStyle := styles.MutedText
	marker := "  "
	if focused {
		labelStyle = styles.AccentText.Bold(true)
		marker = "▸ "
	}
	return labelStyle.Render(marker+padRight(label, 8)) + value
}

func (m Model) fieldError(msg string, styles Styles) string {
	if msg == "" {
		return ""
	}
	return styles.DangerText.Render("  " + msg)
}

func (m Model) formFooter(submitting bool, action string, styles Styles) string {
	if submitting {
		return m.spinner.View() + styles.MutedText.Render(" Sending...")
	}
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	return keyStyle.Render("enter") + styles.MutedText.Render(" "+action+"  ") +
		keyStyle.Render("esc") + styles.MutedText.Render(" Close")
}
