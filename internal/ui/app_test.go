package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/detail"
	"github.com/five82/energy/internal/favorites"
	"github.com/five82/energy/internal/kv"
	"github.com/five82/energy/internal/nav"
	"github.com/five82/energy/internal/newsletter"
	"github.com/five82/energy/internal/prefs"
	"github.com/five82/energy/internal/rating"
)

type fakeLoader struct {
	requests []browse.Request
}

func (f *fakeLoader) Load(_ context.Context, req browse.Request) browse.Result {
	f.requests = append(f.requests, req)
	res := browse.Result{Gen: req.Gen, Kind: req.Kind, TotalPages: 3}
	switch req.Kind {
	case browse.RequestCategories:
		res.Categories = []catalog.Category{
			{Name: "abs", Filter: string(req.Filter)},
			{Name: "biceps", Filter: string(req.Filter)},
		}
	case browse.RequestExercises:
		res.Exercises = []catalog.Exercise{
			{ID: "ex-1", Name: "air bike", Rating: 4.2, BurnedCalories: 312, Time: 3, BodyPart: "waist", Target: "abs"},
			{ID: "ex-2", Name: "crunch", Rating: 3, BurnedCalories: 120, Time: 2, BodyPart: "waist", Target: "abs"},
		}
	case browse.RequestFavorites:
		for _, id := range req.IDs {
			res.Exercises = append(res.Exercises, catalog.Exercise{ID: id, Name: "fav " + id})
		}
		res.TotalPages = 0
	}
	return res
}

func (f *fakeLoader) last(t *testing.T) browse.Request {
	t.Helper()
	if len(f.requests) == 0 {
		t.Fatal("no list request issued")
	}
	return f.requests[len(f.requests)-1]
}

type fakeExercises struct{}

func (fakeExercises) FetchExercise(_ context.Context, id string) (catalog.Exercise, error) {
	if id == "broken" {
		return catalog.Exercise{}, fmt.Errorf("boom")
	}
	return catalog.Exercise{
		ID:          id,
		Name:        "air bike",
		Rating:      4.2,
		Popularity:  12345,
		Description: "Pedal **fast**.",
	}, nil
}

type fakeAPI struct {
	subscribed []string
	ratings    []catalog.Rating
	subErr     error
}

func (f *fakeAPI) Subscribe(_ context.Context, email string) (string, error) {
	f.subscribed = append(f.subscribed, email)
	return "", f.subErr
}

func (f *fakeAPI) RateExercise(_ context.Context, id string, r catalog.Rating) (catalog.Exercise, error) {
	f.ratings = append(f.ratings, r)
	return catalog.Exercise{ID: id}, nil
}

type fixture struct {
	loader    *fakeLoader
	api       *fakeAPI
	favorites *favorites.Store
	cache     *kv.Cache
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestModel(t *testing.T) (Model, *fixture) {
	t.Helper()
	cache := kv.New(kv.NewMemoryBackend(), quietLogger())
	fx := &fixture{
		loader:    &fakeLoader{},
		api:       &fakeAPI{},
		favorites: favorites.New(cache),
		cache:     cache,
	}
	m := New(Options{
		Machine:    browse.NewMachine(fx.favorites, browse.DefaultPageSize),
		Loader:     fx.loader,
		Exercises:  fakeExercises{},
		Favorites:  fx.favorites,
		Nav:        nav.New(cache),
		Newsletter: newsletter.New(fx.api, nil, quietLogger()),
		Rating:     rating.New(fx.api, nil, quietLogger()),
		Prefs:      prefs.Prefs{Theme: "Nightfox", Layout: prefs.LayoutList},
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		Logger:     quietLogger(),
	})
	for _, ti := range []*textinput.Model{
		&m.searchInput,
		&m.newsletterForm.input,
		&m.ratingForm.email,
		&m.ratingForm.review,
	} {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	m.after = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return fn(time.Time{}) }
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = pump(t, m, m.Init())
	return m, fx
}

// collect runs cmd and returns the messages it produced, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// pump feeds the messages of cmd back into the model until no work is left.
// Toast expiries are dropped so notifications stay observable.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(toastExpiredMsg); ok {
			continue
		}
		next, c := m.Update(msg)
		m = next.(Model)
		queue = append(queue, collect(c)...)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = pump(t, next.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = pump(t, next.(Model), cmd)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestInitLoadsSavedPage(t *testing.T) {
	m, fx := newTestModel(t)

	req := fx.loader.last(t)
	if req.Kind != browse.RequestCategories || req.Filter != catalog.FilterMuscles || req.Page != 1 {
		t.Fatalf("initial request = %+v, want Muscles categories page 1", req)
	}
	view := m.machine.View()
	if view.Status != browse.StatusReady || len(view.Categories) != 2 {
		t.Fatalf("view = %+v, want two categories", view)
	}
	if !strings.Contains(m.View(), "Abs") {
		t.Fatal("rendered catalog should list the Abs category")
	}
}

func TestCategoryDrillDownAndBack(t *testing.T) {
	m, fx := newTestModel(t)

	m = press(t, m, "j", "enter")
	req := fx.loader.last(t)
	if req.Kind != browse.RequestExercises || req.Category != "biceps" {
		t.Fatalf("request = %+v, want exercises of biceps", req)
	}
	if got := m.machine.View().Breadcrumbs; len(got) != 2 || got[1] != "biceps" {
		t.Fatalf("breadcrumbs = %v", got)
	}
	out := m.View()
	if !strings.Contains(out, "WORKOUT") || !strings.Contains(out, "Start") {
		t.Fatal("exercise cards should show the workout badge and start action")
	}

	m = press(t, m, "backspace")
	if m.machine.Category() != "" || fx.loader.last(t).Kind != browse.RequestCategories {
		t.Fatal("backspace should return to the category list")
	}
}

func TestPaginationKeys(t *testing.T) {
	m, fx := newTestModel(t)

	m = press(t, m, "l")
	if fx.loader.last(t).Page != 2 {
		t.Fatalf("next page request = %+v", fx.loader.last(t))
	}
	m = press(t, m, "]")
	if fx.loader.last(t).Page != 3 {
		t.Fatalf("last page request = %+v", fx.loader.last(t))
	}
	n := len(fx.loader.requests)
	m = press(t, m, "l")
	if len(fx.loader.requests) != n {
		t.Fatal("paging past the last page must not issue a request")
	}
	_ = press(t, m, "[")
	if fx.loader.last(t).Page != 1 {
		t.Fatalf("first page request = %+v", fx.loader.last(t))
	}
}

func TestSearchIsDebounced(t *testing.T) {
	m, fx := newTestModel(t)
	m = press(t, m, "enter")

	m = press(t, m, "/")
	if !m.searching {
		t.Fatal("/ should focus the search input inside a category")
	}

	// Type without pumping so the ticks queue up.
	next, first := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	next, second := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	m = next.(Model)

	before := len(fx.loader.requests)
	m = pump(t, m, first)
	if len(fx.loader.requests) != before {
		t.Fatal("a superseded keystroke must not search")
	}
	m = pump(t, m, second)
	req := fx.loader.last(t)
	if req.Keyword != "pu" || req.Page != 1 {
		t.Fatalf("search request = %+v, want keyword pu on page 1", req)
	}

	m = press(t, m, "enter")
	if m.searching {
		t.Fatal("enter should leave the search input")
	}
	if len(fx.loader.requests) != before+1 {
		t.Fatal("enter with an unchanged keyword must not search again")
	}
}

func TestSearchUnavailableWithoutCategory(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	if m.searching {
		t.Fatal("search is only offered inside a category")
	}
}

func TestFavoritesPageAndPersistence(t *testing.T) {
	m, fx := newTestModel(t)

	m = press(t, m, "tab")
	if m.nav.Active() != browse.ModeFavorites {
		t.Fatal("tab should switch to favorites")
	}
	if kv.ReadJSON(fx.cache, nav.StorageKey, "") != string(browse.ModeFavorites) {
		t.Fatal("selected page should be persisted")
	}
	if got := m.machine.View().Message; got != browse.EmptyFavoritesText {
		t.Fatalf("empty favorites message = %q", got)
	}

	fx.favorites.Add("a")
	fx.favorites.Add("b")
	m = press(t, m, "r")
	if req := fx.loader.last(t); req.Kind != browse.RequestFavorites || len(req.IDs) != 2 {
		t.Fatalf("favorites request = %+v", req)
	}

	m = press(t, m, "x")
	if fx.favorites.Contains("a") || len(m.machine.Exercises()) != 1 {
		t.Fatal("x should remove the selected favorite without a refetch")
	}

	m = press(t, m, "2")
	if m.nav.Active() != browse.ModeHome || m.machine.Filter() != catalog.FilterBodyParts {
		t.Fatal("choosing a filter from favorites should return home")
	}
}

func TestDetailOverlayFavoriteAndRating(t *testing.T) {
	m, fx := newTestModel(t)
	m = press(t, m, "enter", "enter")

	if m.detail.State() != detail.StateLoaded || m.detail.ActiveID() != "ex-1" {
		t.Fatalf("detail state = %v id = %q", m.detail.State(), m.detail.ActiveID())
	}
	if out := m.View(); !strings.Contains(out, "12,345") {
		t.Fatal("detail should show humanized popularity")
	}

	m = press(t, m, "a")
	if !fx.favorites.Contains("ex-1") {
		t.Fatal("a should add the exercise to favorites")
	}
	if !strings.Contains(m.View(), detail.RemoveFavoriteLabel) {
		t.Fatal("favorite label should flip after adding")
	}

	m = press(t, m, "r")
	if m.detail.IsOpen() || m.active != overlayRating {
		t.Fatal("r should close the detail and open the rating form")
	}

	m = press(t, m, "enter")
	if m.ratingForm.errs["rate"] != rating.MsgRateRequired {
		t.Fatalf("rating errors = %v", m.ratingForm.errs)
	}

	m = press(t, m, "4", "tab")
	m = typeText(t, m, "me@example.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "solid")
	m = press(t, m, "enter")

	if len(fx.api.ratings) != 1 {
		t.Fatalf("ratings sent = %d, want 1", len(fx.api.ratings))
	}
	got := fx.api.ratings[0]
	if got.Rate != 4 || got.Email != "me@example.com" || got.Review != "solid" {
		t.Fatalf("rating = %+v", got)
	}
	if m.active != overlayNone || !m.toast.visible || m.toast.message != rating.MsgThanks {
		t.Fatalf("after rating: active=%v toast=%+v", m.active, m.toast)
	}
}

func TestDetailRemoveInFavoritesReloads(t *testing.T) {
	m, fx := newTestModel(t)
	fx.favorites.Add("a")
	m = press(t, m, "tab", "enter")
	if !m.detail.IsOpen() {
		t.Fatal("enter should open the favorite")
	}

	before := len(fx.loader.requests)
	m = press(t, m, "a")
	if m.detail.IsOpen() {
		t.Fatal("removing a favorite from the favorites page closes the overlay")
	}
	if len(fx.loader.requests) != before {
		t.Fatal("the last favorite leaves an empty page without a request")
	}
	if m.machine.Status() != browse.StatusEmpty {
		t.Fatalf("status = %v, want empty", m.machine.Status())
	}
}

func TestDetailFailureShowsError(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := m.openDetail("broken")
	m = pump(t, m, cmd)
	if m.detail.State() != detail.StateFailed {
		t.Fatalf("state = %v, want failed", m.detail.State())
	}
	if !strings.Contains(m.View(), detail.ErrorTitle) {
		t.Fatal("failed detail should render the error title")
	}
	m = press(t, m, "esc")
	if m.detail.IsOpen() {
		t.Fatal("esc should close the overlay")
	}
}

func TestStaleDetailResponseIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	stale := m.openDetail("ex-1")
	m.detail.Close()
	m = pump(t, m, stale)
	if m.detail.IsOpen() {
		t.Fatal("a response for a closed overlay must not reopen it")
	}
}

func TestNewsletterForm(t *testing.T) {
	m, fx := newTestModel(t)
	m = press(t, m, "s")
	if m.active != overlayNewsletter {
		t.Fatal("s should open the newsletter form")
	}

	m = typeText(t, m, "nope")
	m = press(t, m, "enter")
	if m.newsletterForm.fieldErr != newsletter.MsgEmailInvalid || len(fx.api.subscribed) != 0 {
		t.Fatalf("invalid email: fieldErr=%q sent=%v", m.newsletterForm.fieldErr, fx.api.subscribed)
	}

	m.newsletterForm.input.SetValue("")
	m = typeText(t, m, "me@example.com")
	m = press(t, m, "enter")
	if len(fx.api.subscribed) != 1 || fx.api.subscribed[0] != "me@example.com" {
		t.Fatalf("subscribed = %v", fx.api.subscribed)
	}
	if m.active != overlayNone || m.toast.message != newsletter.MsgSubscribed || m.toast.kind != toastSuccess {
		t.Fatalf("after subscribe: active=%v toast=%+v", m.active, m.toast)
	}
	if m.newsletterForm.input.Value() != "" {
		t.Fatal("successful subscription clears the form")
	}
}

func TestNewsletterConflictKeepsForm(t *testing.T) {
	m, fx := newTestModel(t)
	fx.api.subErr = &catalog.RequestError{Message: "exists", Status: 409}

	m = press(t, m, "s")
	m = typeText(t, m, "me@example.com")
	m = press(t, m, "enter")

	if m.active != overlayNewsletter {
		t.Fatal("a failed subscription keeps the form open")
	}
	if m.toast.message != newsletter.MsgAlreadySubscribed || m.toast.kind != toastError {
		t.Fatalf("toast = %+v", m.toast)
	}
}

func TestToastExpires(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := m.showToast("hello", toastSuccess)
	if !m.toast.visible {
		t.Fatal("toast should be visible")
	}
	if !strings.Contains(m.View(), "hello") {
		t.Fatal("toast should replace the command bar")
	}
	for _, msg := range collect(cmd) {
		m = send(t, m, msg)
	}
	if m.toast.visible {
		t.Fatal("toast should hide after expiry")
	}
}

func TestLayoutAndThemePersist(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "v", "T")
	if m.layout != prefs.LayoutGrid || m.theme.Name != "Kanagawa" {
		t.Fatalf("layout=%q theme=%q", m.layout, m.theme.Name)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Layout != prefs.LayoutGrid || saved.Theme != "Kanagawa" {
		t.Fatalf("saved prefs = %+v", saved)
	}
	if !strings.Contains(m.View(), "Abs") {
		t.Fatal("grid layout should still render the categories")
	}
}

func TestHelpAndLogOverlays(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	if m.active != overlayHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? should show help")
	}
	m = press(t, m, "x")
	if m.active != overlayNone {
		t.Fatal("any key closes help")
	}

	m = press(t, m, "L")
	if m.active != overlayLogs {
		t.Fatal("L should show logs")
	}
	m = press(t, m, "esc")
	if m.active != overlayNone {
		t.Fatal("esc closes logs")
	}
}

func TestQuoteShownInHeader(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, quoteLoadedMsg{quote: catalog.Quote{Quote: "Keep going", Author: "Coach"}, ok: true})
	if !strings.Contains(m.View(), "Keep going") {
		t.Fatal("header should show the quote")
	}
}

func TestStaleListResultIgnored(t *testing.T) {
	m, fx := newTestModel(t)
	m = press(t, m, "l")
	old := fx.loader.last(t)
	m = press(t, m, "l")

	m = send(t, m, listLoadedMsg{result: browse.Result{Gen: old.Gen, Kind: old.Kind, TotalPages: 9}})
	if m.machine.TotalPages() != 3 {
		t.Fatalf("total pages = %d, stale result should be ignored", m.machine.TotalPages())
	}
}

func TestUntilNextDay(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, loc)
	if got := untilNextDay(now); got != time.Hour+time.Second {
		t.Fatalf("untilNextDay = %v, want 1h0m1s", got)
	}
}

type countingQuotes struct{ calls int }

func (c *countingQuotes) Today(context.Context) (catalog.Quote, bool) {
	c.calls++
	return catalog.Quote{Quote: "Day " + fmt.Sprint(c.calls), Author: "Coach"}, true
}

func TestQuoteRefreshAtRollover(t *testing.T) {
	m, _ := newTestModel(t)
	quotes := &countingQuotes{}
	m.quotes = quotes

	next, cmd := m.Update(quoteRefreshMsg{})
	m = next.(Model)
	for _, msg := range collect(cmd) {
		if _, ok := msg.(quoteRefreshMsg); ok {
			continue
		}
		m = send(t, m, msg)
	}
	if quotes.calls != 1 || m.quote.Quote != "Day 1" {
		t.Fatalf("calls=%d quote=%q", quotes.calls, m.quote.Quote)
	}
}
