package browse

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/energy/internal/catalog"
)

// Placeholder texts for the empty and failed states.
const (
	EmptyCategoriesText = "No categories found"
	EmptyExercisesText  = "No exercises found"
	EmptyFavoritesText  = "It appears that you haven't added any exercises to your favorites yet. To get started, add exercises you like to your favorites for easier access in the future."
	FailedText          = "Something went wrong. Please try again later."
	LoadingText         = "Loading..."
)

// maxWindowedPages is the largest page count rendered without an ellipsis.
const maxWindowedPages = 5

// CategoryCard is a drill-down tile for a category.
type CategoryCard struct {
	Name     string
	Title    string
	Filter   string
	ImageURL string
}

// ExerciseCard summarizes an exercise in a list.
type ExerciseCard struct {
	ID             string
	Title          string
	Rating         float64
	RatingLabel    string
	Stars          int
	BurnedCalories int
	Time           int
	BodyPart       string
	Target         string
	Removable      bool
}

// PageItem is one slot of the pagination bar: a page number or an ellipsis.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Pagination describes the pagination bar. A zero value renders nothing.
type Pagination struct {
	Current int
	Total   int
	Items   []PageItem
}

// Visible reports whether the bar should be drawn at all.
func (p Pagination) Visible() bool { return p.Total > 1 }

// CanFirst reports whether the first and previous arrows are enabled.
func (p Pagination) CanFirst() bool { return p.Visible() && p.Current > 1 }

// CanLast reports whether the next and last arrows are enabled.
func (p Pagination) CanLast() bool { return p.Visible() && p.Current < p.Total }

// Pages returns the page numbers in the bar, ellipses excluded.
func (p Pagination) Pages() []int {
	pages := make([]int, 0, len(p.Items))
	for _, item := range p.Items {
		if !item.Ellipsis {
			pages = append(pages, item.Page)
		}
	}
	return pages
}

// BuildPagination lays out the page numbers for total pages with current
// selected. Up to five pages are listed in full. Beyond that the bar shows
// the two pages before current (when current > 2), current, an ellipsis and
// the last two pages. Tail pages at or before current are not repeated; the
// ellipsis is dropped only when no tail page is left.
func BuildPagination(total, current int) Pagination {
	if total <= 1 {
		return Pagination{}
	}
	current = min(max(current, 1), total)
	p := Pagination{Current: current, Total: total}

	if total <= maxWindowedPages {
		for page := 1; page <= total; page++ {
			p.Items = append(p.Items, PageItem{Page: page, Current: page == current})
		}
		return p
	}

	if current > 2 {
		p.Items = append(p.Items, PageItem{Page: current - 2}, PageItem{Page: current - 1})
	}
	p.Items = append(p.Items, PageItem{Page: current, Current: true})

	var tail []int
	for _, page := range []int{total - 1, total} {
		if page > current {
			tail = append(tail, page)
		}
	}
	if len(tail) > 0 {
		p.Items = append(p.Items, PageItem{Ellipsis: true})
	}
	for _, page := range tail {
		p.Items = append(p.Items, PageItem{Page: page})
	}
	return p
}

// View is the renderable projection of the machine.
type View struct {
	Mode        Mode
	Filter      catalog.Filter
	Status      Status
	Breadcrumbs []string
	ShowSearch  bool
	Keyword     string
	Categories  []CategoryCard
	Exercises   []ExerciseCard
	Message     string
	Detail      string
	Pagination  Pagination
}

// HasCards reports whether the view has any cards to draw.
func (v View) HasCards() bool {
	return len(v.Categories) > 0 || len(v.Exercises) > 0
}

// View builds the view-model for the current state.
func (m *Machine) View() View {
	v := View{
		Mode:       m.mode,
		Filter:     m.filter,
		Status:     m.status,
		ShowSearch: m.mode == ModeHome && m.category != "",
		Keyword:    m.search,
	}

	switch {
	case m.mode == ModeFavorites:
		v.Breadcrumbs = []string{"Favorites"}
	case m.category != "":
		v.Breadcrumbs = []string{"Exercises", m.category}
	default:
		v.Breadcrumbs = []string{"Exercises"}
	}

	switch m.status {
	case StatusLoading:
		v.Message = LoadingText
	case StatusFailed:
		v.Message = FailedText
		v.Detail = catalog.MessageOf(m.err, errText(m.err))
	case StatusEmpty:
		v.Message = m.emptyText()
	case StatusReady:
		for _, c := range m.categories {
			v.Categories = append(v.Categories, NewCategoryCard(c))
		}
		removable := m.mode == ModeFavorites
		for _, ex := range m.exercises {
			card := NewExerciseCard(ex)
			card.Removable = removable
			v.Exercises = append(v.Exercises, card)
		}
		if m.mode == ModeHome {
			v.Pagination = BuildPagination(m.totalPages, m.page)
		}
	}
	return v
}

func (m *Machine) emptyText() string {
	switch {
	case m.mode == ModeFavorites:
		return EmptyFavoritesText
	case m.category != "":
		return EmptyExercisesText
	default:
		return EmptyCategoriesText
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// title capitalizes each word. Casers keep state, so one is built per call.
func title(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// NewCategoryCard projects a category into a card.
func NewCategoryCard(c catalog.Category) CategoryCard {
	return CategoryCard{
		Name:     c.Name,
		Title:    title(c.Name),
		Filter:   c.Filter,
		ImageURL: c.ImageURL,
	}
}

// NewExerciseCard projects an exercise into a card.
func NewExerciseCard(ex catalog.Exercise) ExerciseCard {
	return ExerciseCard{
		ID:             ex.ID,
		Title:          title(ex.Name),
		Rating:         ex.Rating,
		RatingLabel:    fmt.Sprintf("%.1f", ex.Rating),
		Stars:          Stars(ex.Rating),
		BurnedCalories: ex.BurnedCalories,
		Time:           ex.Time,
		BodyPart:       ex.BodyPart,
		Target:         ex.Target,
	}
}

// Stars rounds rating to whole stars on a five-star scale.
func Stars(rating float64) int {
	if math.IsNaN(rating) {
		return 0
	}
	return int(math.Round(min(max(rating, 0), 5)))
}
