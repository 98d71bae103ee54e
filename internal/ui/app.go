package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/detail"
	"github.com/five82/energy/internal/nav"
	"github.com/five82/energy/internal/newsletter"
	"github.com/five82/energy/internal/prefs"
	"github.com/five82/energy/internal/rating"
)

// ListLoader resolves list requests issued by the browse machine.
type ListLoader interface {
	Load(ctx context.Context, req browse.Request) browse.Result
}

// QuoteSource provides the quote of the day.
type QuoteSource interface {
	Today(ctx context.Context) (catalog.Quote, bool)
}

// Subscriber handles the newsletter form.
type Subscriber interface {
	Check(email string) string
	Submit(ctx context.Context, email string) newsletter.Outcome
}

// RatingSubmitter handles the rating form.
type RatingSubmitter interface {
	Check(f rating.Form) map[string]string
	Submit(ctx context.Context, f rating.Form) rating.Outcome
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Machine     *browse.Machine
	Loader      ListLoader
	Exercises   detail.ExerciseFetcher
	Favorites   detail.Favorites
	Nav         *nav.Switcher
	Quotes      QuoteSource
	Newsletter  Subscriber
	Rating      RatingSubmitter
	SearchDelay time.Duration
	Prefs       prefs.Prefs
	PrefsPath   string
	LogPath     string
	Logger      logrus.FieldLogger
}

// overlayKind is the modal shown above the catalog.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayNewsletter
	overlayRating
	overlayLogs
	overlayHelp
)

// tickFunc schedules a message after a delay.
type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	log        logrus.FieldLogger
	loader     ListLoader
	exercises  detail.ExerciseFetcher
	quotes     QuoteSource
	newsletter Subscriber
	rating     RatingSubmitter
	prefsPath  string
	logPath    string
	after      tickFunc
	now        func() time.Time

	// Domain state
	nav       *nav.Switcher
	machine   *browse.Machine
	detail    *detail.Overlay
	debouncer *browse.Debouncer

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	layout   prefs.Layout
	width    int
	height   int
	ready    bool
	active   overlayKind
	selected int
	spinner  spinner.Model
	spinning bool
	toast    toast

	quote    catalog.Quote
	hasQuote bool

	initial    browse.Request
	hasInitial bool

	// Search
	searching   bool
	searchInput textinput.Model

	// Detail overlay
	detailViewport viewport.Model

	// Forms
	newsletterForm newsletterForm
	ratingForm     ratingForm

	// Logs overlay
	logViewport viewport.Model
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	switcher := opts.Nav
	if switcher == nil {
		switcher = nav.New(nil)
	}
	machine := opts.Machine
	if machine == nil {
		machine = browse.NewMachine(nil, browse.DefaultPageSize)
	}
	delay := opts.SearchDelay
	if delay <= 0 {
		delay = browse.DefaultSearchDelay
	}
	p := opts.Prefs
	if p.Theme == "" {
		p.Theme = prefs.Default().Theme
	}
	if p.Layout == "" {
		p.Layout = prefs.Default().Layout
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	// The saved page is entered up front so the first frame already shows
	// its loading state.
	initial, hasInitial := switcher.Enter(machine)

	return Model{
		ctx:         ctx,
		log:         log,
		loader:      opts.Loader,
		exercises:   opts.Exercises,
		quotes:      opts.Quotes,
		newsletter:  opts.Newsletter,
		rating:      opts.Rating,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		after:       tea.Tick,
		now:         time.Now,
		nav:         switcher,
		machine:     machine,
		detail:      detail.New(opts.Favorites),
		debouncer:   browse.NewDebouncer(delay),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		theme:       GetTheme(p.Theme),
		layout:      p.Layout,
		spinner:     spin,
		searchInput: newSearchInput(),
		newsletterForm: newsletterForm{
			input: newEmailInput(),
		},
		ratingForm: newRatingForm(),
		initial:    initial,
		hasInitial: hasInitial,
		spinning:   hasInitial,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.hasInitial && m.loader != nil {
		cmds = append(cmds, loadListCmd(m.ctx, m.loader, m.initial), m.spinner.Tick)
	}
	if m.quotes != nil {
		cmds = append(cmds, fetchQuoteCmd(m.ctx, m.quotes), m.scheduleQuoteRefresh())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.initDetailViewport()
			m.initLogViewport()
		}
		m.ready = true
		m.resizeOverlays()
		m.updateDetailViewport()
		return m, nil

	case listLoadedMsg:
		if m.machine.Apply(msg.result) {
			m.selected = 0
		} else {
			m.log.WithField("gen", msg.result.Gen).Debug("discarded stale list result")
		}
		return m, nil

	case detailLoadedMsg:
		if m.detail.Resolve(msg.resp) {
			if msg.resp.Err != nil {
				m.log.WithError(msg.resp.Err).WithField("id", msg.resp.Ticket.ID).Warn("exercise detail failed")
			}
			m.updateDetailViewport()
		}
		return m, nil

	case quoteLoadedMsg:
		if msg.ok {
			m.quote = msg.quote
			m.hasQuote = true
		}
		return m, nil

	case quoteRefreshMsg:
		if m.quotes == nil {
			return m, nil
		}
		return m, tea.Batch(fetchQuoteCmd(m.ctx, m.quotes), m.scheduleQuoteRefresh())

	case searchTickMsg:
		keyword, ok := m.debouncer.Fire(msg.tag)
		if !ok {
			return m, nil
		}
		return m, m.issue(m.machine.Search(keyword))

	case toastExpiredMsg:
		m.toast.expire(msg.seq)
		return m, nil

	case subscribeDoneMsg:
		return m.handleSubscribeDone(msg.outcome)

	case ratingDoneMsg:
		return m.handleRatingDone(msg.outcome)

	case logsLoadedMsg:
		m.setLogContent(msg.lines, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return browse.LoadingText
	}

	switch m.active {
	case overlayHelp:
		return m.renderHelp()
	case overlayNewsletter:
		return m.renderNewsletter()
	case overlayRating:
		return m.renderRating()
	case overlayLogs:
		return m.renderLogs()
	}
	if m.detail.IsOpen() {
		return m.renderDetail()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the focused surface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.active {
	case overlayHelp:
		// Any key closes help
		m.active = overlayNone
		return m, nil
	case overlayNewsletter:
		return m.handleNewsletterKey(msg)
	case overlayRating:
		return m.handleRatingKey(msg)
	case overlayLogs:
		return m.handleLogsKey(msg)
	}
	if m.detail.IsOpen() {
		return m.handleDetailKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleCatalogKey(msg)
}

// handleCatalogKey processes keys on the main catalog page.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.machine.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.active = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Layout):
		m.layout = m.layout.Next()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.active = overlayLogs
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.Newsletter):
		return m, m.openNewsletter()

	case key.Matches(msg, m.keys.TogglePage):
		m.nav.Toggle()
		return m, m.enterPage()

	case key.Matches(msg, m.keys.Muscles):
		return m, m.selectFilter(catalog.FilterMuscles)
	case key.Matches(msg, m.keys.BodyParts):
		return m, m.selectFilter(catalog.FilterBodyParts)
	case key.Matches(msg, m.keys.Equipment):
		return m, m.selectFilter(catalog.FilterEquipment)
	case key.Matches(msg, m.keys.CycleFilter):
		return m, m.selectFilter(m.machine.Filter().Next())

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1, view)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1, view)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected(view)

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Escape):
		if m.machine.Category() == "" {
			return m, nil
		}
		m.debouncer.Cancel()
		return m, m.issue(m.machine.ClearCategory())

	case key.Matches(msg, m.keys.Search):
		if !view.ShowSearch {
			return m, nil
		}
		m.searching = true
		m.searchInput.SetValue(m.machine.Keyword())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.issue(m.machine.Paginate(m.machine.Page() - 1))
	case key.Matches(msg, m.keys.NextPage):
		return m, m.issue(m.machine.Paginate(m.machine.Page() + 1))
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.issue(m.machine.Paginate(1))
	case key.Matches(msg, m.keys.LastPage):
		return m, m.issue(m.machine.Paginate(m.machine.TotalPages()))

	case key.Matches(msg, m.keys.Remove):
		if id := m.selectedExerciseID(view); id != "" && m.machine.RemoveFavorite(id) {
			m.selected = clamp(m.selected, 0, len(m.machine.Exercises())-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.issue(m.machine.Refresh())
	}

	return m, nil
}

// handleSearchKey feeds the search input and debounces the query.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		if msg.Type == tea.KeyEnter {
			return m, m.searchNow()
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	tag := m.debouncer.Bump(m.searchInput.Value())
	return m, tea.Batch(cmd, m.after(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return searchTickMsg{tag: tag}
	}))
}

// searchNow submits the pending keyword without waiting for the debounce.
func (m *Model) searchNow() tea.Cmd {
	tag := m.debouncer.Bump(m.searchInput.Value())
	keyword, ok := m.debouncer.Fire(tag)
	if !ok || keyword == m.machine.Keyword() {
		return nil
	}
	return m.issue(m.machine.Search(keyword))
}

// handleDetailKey processes keys while the detail overlay is open.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.detail.Close()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if m.detail.State() != detail.StateLoaded {
			return m, nil
		}
		out, ok := m.detail.ToggleFavorite(m.nav.Active())
		if !ok {
			return m, nil
		}
		if out.Reload {
			return m, m.issue(m.machine.Refresh())
		}
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Rate):
		if m.detail.State() != detail.StateLoaded {
			return m, nil
		}
		id, ok := m.detail.StartRating()
		if !ok {
			return m, nil
		}
		return m, m.openRating(id)
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// handleLogsKey processes keys while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.active = overlayNone
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// issue starts the load for req when the transition produced one.
func (m *Model) issue(req browse.Request, ok bool) tea.Cmd {
	if !ok || m.loader == nil {
		return nil
	}
	return tea.Batch(loadListCmd(m.ctx, m.loader, req), m.startSpinner())
}

// enterPage shows the active page from its initial state.
func (m *Model) enterPage() tea.Cmd {
	m.searching = false
	m.searchInput.Blur()
	m.debouncer.Cancel()
	m.selected = 0
	return m.issue(m.nav.Enter(m.machine))
}

// selectFilter switches the facet. Picking a filter from the favorites page
// also returns to the home page.
func (m *Model) selectFilter(filter catalog.Filter) tea.Cmd {
	req, ok := m.machine.SelectFilter(filter)
	if !ok {
		return nil
	}
	m.nav.Select(browse.ModeHome)
	m.debouncer.Cancel()
	m.selected = 0
	return m.issue(req, ok)
}

// openSelected drills into a category card or opens an exercise card.
func (m *Model) openSelected(view browse.View) tea.Cmd {
	if n := len(view.Categories); n > 0 {
		card := view.Categories[clamp(m.selected, 0, n-1)]
		m.selected = 0
		return m.issue(m.machine.SelectCategory(card.Name))
	}
	id := m.selectedExerciseID(view)
	if id == "" {
		return nil
	}
	return m.openDetail(id)
}

// openDetail shows the overlay for id and fetches the exercise.
func (m *Model) openDetail(id string) tea.Cmd {
	ticket, ok := m.detail.Open(id)
	if !ok || m.exercises == nil {
		return nil
	}
	m.updateDetailViewport()
	return tea.Batch(fetchDetailCmd(m.ctx, m.exercises, ticket), m.startSpinner())
}

func (m *Model) selectedExerciseID(view browse.View) string {
	n := len(view.Exercises)
	if n == 0 {
		return ""
	}
	return view.Exercises[clamp(m.selected, 0, n-1)].ID
}

func (m *Model) moveSelection(delta int, view browse.View) {
	n := len(view.Categories) + len(view.Exercises)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = clamp(m.selected+delta, 0, n-1)
}

// busy reports whether anything is waiting on the network.
func (m Model) busy() bool {
	return m.machine.Status() == browse.StatusLoading ||
		m.detail.State() == detail.StateLoading ||
		m.newsletterForm.submitting ||
		m.ratingForm.submitting
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// showToast replaces the current notification.
func (m *Model) showToast(message string, kind toastKind) tea.Cmd {
	seq := m.toast.show(message, kind)
	return m.after(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// scheduleQuoteRefresh fetches the quote again once the local date changes.
func (m Model) scheduleQuoteRefresh() tea.Cmd {
	return m.after(untilNextDay(m.now()), func(time.Time) tea.Msg {
		return quoteRefreshMsg{}
	})
}

// untilNextDay returns the time left until just after local midnight.
func untilNextDay(now time.Time) time.Duration {
	y, mo, d := now.Date()
	return time.Date(y, mo, d+1, 0, 0, 1, 0, now.Location()).Sub(now)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}); err != nil {
		m.log.WithError(err).Warn("save preferences")
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		teaOpts = append(teaOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
