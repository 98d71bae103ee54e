package browse

import (
	"slices"
	"strings"

	"github.com/five82/energy/internal/catalog"
)

// Mode is the top-level page.
type Mode string

const (
	ModeHome      Mode = "home"
	ModeFavorites Mode = "favorites"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeHome || m == ModeFavorites
}

// Status describes the content currently held by the machine.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// RequestKind selects the fetch a Request describes.
type RequestKind int

const (
	RequestCategories RequestKind = iota + 1
	RequestExercises
	RequestFavorites
)

// Request is a fetch the caller must perform on behalf of the machine.
type Request struct {
	Gen      uint64
	Kind     RequestKind
	Filter   catalog.Filter
	Category string
	Page     int
	Limit    int
	Keyword  string
	IDs      []string
}

// Result is the outcome of a Request.
type Result struct {
	Gen        uint64
	Kind       RequestKind
	Categories []catalog.Category
	Exercises  []catalog.Exercise
	TotalPages int
	Err        error
}

// FavoriteStore is the part of the favorites store the machine needs.
type FavoriteStore interface {
	IDs() []string
	Remove(id string) bool
}

// DefaultPageSize is the exercise list limit.
const DefaultPageSize = 10

// Machine holds the browse state. It is not safe for concurrent use; the UI
// drives it from its update loop.
type Machine struct {
	favorites FavoriteStore
	pageSize  int

	mode     Mode
	filter   catalog.Filter
	category string
	search   string
	page     int
	gen      uint64

	pending    RequestKind
	status     Status
	categories []catalog.Category
	exercises  []catalog.Exercise
	totalPages int
	err        error
}

// NewMachine returns a machine on the home page with the Muscles filter.
// Nothing is loaded until the first transition.
func NewMachine(favorites FavoriteStore, pageSize int) *Machine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Machine{
		favorites: favorites,
		pageSize:  pageSize,
		mode:      ModeHome,
		filter:    catalog.FilterMuscles,
		page:      1,
	}
}

// Mode returns the active top-level page.
func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) Filter() catalog.Filter { return m.filter }

func (m *Machine) Category() string { return m.category }

func (m *Machine) Keyword() string { return m.search }

func (m *Machine) Page() int { return m.page }

// TotalPages returns the page count of the last loaded list, 0 when unknown.
// A failed load keeps the previous count.
func (m *Machine) TotalPages() int { return m.totalPages }

func (m *Machine) Status() Status { return m.status }

func (m *Machine) Err() error { return m.err }

// Exercises returns a copy of the loaded exercise list.
func (m *Machine) Exercises() []catalog.Exercise {
	return slices.Clone(m.exercises)
}

// SelectFilter switches the facet and shows its category list from page 1.
func (m *Machine) SelectFilter(filter catalog.Filter) (Request, bool) {
	if !filter.Valid() {
		return Request{}, false
	}
	m.mode = ModeHome
	m.filter = filter
	m.category = ""
	m.search = ""
	m.page = 1
	m.totalPages = 0
	return m.categoriesRequest(), true
}

// SelectCategory drills into a category of the active filter.
func (m *Machine) SelectCategory(name string) (Request, bool) {
	name = strings.TrimSpace(name)
	if m.mode != ModeHome || name == "" {
		return Request{}, false
	}
	m.category = name
	m.search = ""
	m.page = 1
	m.totalPages = 0
	return m.exercisesRequest(), true
}

// Search filters the selected category by keyword from page 1. It is
// ignored when no category is selected.
func (m *Machine) Search(keyword string) (Request, bool) {
	if m.mode != ModeHome || m.category == "" {
		return Request{}, false
	}
	m.search = keyword
	m.page = 1
	m.totalPages = 0
	return m.exercisesRequest(), true
}

// Paginate loads page of the list being shown. It is a no-op in favorites
// mode, while a list is loading, for pages outside the known range, and for
// the page already shown. When no page count is known yet only pages up to
// the current one can be requested.
func (m *Machine) Paginate(page int) (Request, bool) {
	if m.mode != ModeHome || page < 1 || m.status == StatusLoading {
		return Request{}, false
	}
	if page > max(m.totalPages, m.page) {
		return Request{}, false
	}
	if page == m.page && m.status != StatusFailed {
		return Request{}, false
	}
	m.page = page
	if m.category == "" {
		return m.categoriesRequest(), true
	}
	return m.exercisesRequest(), true
}

// ClearCategory returns to the category list of the active filter.
func (m *Machine) ClearCategory() (Request, bool) {
	if m.mode != ModeHome {
		return Request{}, false
	}
	m.category = ""
	m.search = ""
	m.page = 1
	m.totalPages = 0
	return m.categoriesRequest(), true
}

// EnterHomeMode shows the active filter's category list from page 1.
func (m *Machine) EnterHomeMode() (Request, bool) {
	m.mode = ModeHome
	return m.ClearCategory()
}

// EnterFavoritesMode shows every stored favorite. With no favorites the
// empty state is shown directly and no request is issued.
func (m *Machine) EnterFavoritesMode() (Request, bool) {
	m.mode = ModeFavorites
	m.category = ""
	m.search = ""
	m.totalPages = 0

	var ids []string
	if m.favorites != nil {
		ids = m.favorites.IDs()
	}
	if len(ids) == 0 {
		m.gen++
		m.pending = 0
		m.setContent(StatusEmpty, nil, nil, nil)
		return Request{}, false
	}
	m.begin(RequestFavorites)
	return Request{Gen: m.gen, Kind: RequestFavorites, IDs: ids}, true
}

// Refresh reissues the request for the current view.
func (m *Machine) Refresh() (Request, bool) {
	switch {
	case m.mode == ModeFavorites:
		return m.EnterFavoritesMode()
	case m.category != "":
		return m.exercisesRequest(), true
	default:
		return m.categoriesRequest(), true
	}
}

// RemoveFavorite drops id from the favorites store and removes its card
// without refetching. It only applies in favorites mode and reports whether
// the card was removed.
func (m *Machine) RemoveFavorite(id string) bool {
	if m.mode != ModeFavorites || m.favorites == nil || id == "" {
		return false
	}
	if !m.favorites.Remove(id) {
		return false
	}
	m.exercises = slices.DeleteFunc(m.exercises, func(ex catalog.Exercise) bool { return ex.ID == id })
	if len(m.exercises) == 0 && m.status == StatusReady {
		m.status = StatusEmpty
	}
	return true
}

// Apply stores res if it answers the latest request and reports whether it
// was accepted.
func (m *Machine) Apply(res Result) bool {
	if res.Gen != m.gen || res.Kind != m.pending {
		return false
	}
	m.pending = 0
	if res.Err != nil {
		m.setContent(StatusFailed, nil, nil, res.Err)
		return true
	}

	switch res.Kind {
	case RequestCategories:
		m.totalPages = max(res.TotalPages, 1)
		m.setContent(statusFor(len(res.Categories)), res.Categories, nil, nil)
	case RequestExercises:
		m.totalPages = max(res.TotalPages, 1)
		m.setContent(statusFor(len(res.Exercises)), nil, res.Exercises, nil)
	case RequestFavorites:
		m.totalPages = 0
		m.setContent(statusFor(len(res.Exercises)), nil, res.Exercises, nil)
	}
	return true
}

func statusFor(n int) Status {
	if n == 0 {
		return StatusEmpty
	}
	return StatusReady
}

func (m *Machine) begin(kind RequestKind) {
	m.gen++
	m.pending = kind
	m.status = StatusLoading
	m.err = nil
}

func (m *Machine) setContent(status Status, categories []catalog.Category, exercises []catalog.Exercise, err error) {
	m.status = status
	m.categories = categories
	m.exercises = exercises
	m.err = err
}

func (m *Machine) categoriesRequest() Request {
	m.begin(RequestCategories)
	return Request{Gen: m.gen, Kind: RequestCategories, Filter: m.filter, Page: m.page}
}

func (m *Machine) exercisesRequest() Request {
	m.begin(RequestExercises)
	return Request{
		Gen:      m.gen,
		Kind:     RequestExercises,
		Filter:   m.filter,
		Category: m.category,
		Page:     m.page,
		Limit:    m.pageSize,
		Keyword:  m.search,
	}
}
