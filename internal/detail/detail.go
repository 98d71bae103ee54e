// Package detail manages the exercise detail overlay: which exercise is
// shown, whether its data has arrived, and the favorite and rating actions
// offered for it.
package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
)

// Overlay texts.
const (
	LoadingTitle        = "Loading..."
	ErrorTitle          = "Error loading exercise"
	ErrorDescription    = "Failed to load exercise details. Please try again later."
	AddFavoriteLabel    = "Add to favorites"
	RemoveFavoriteLabel = "Remove from favorites"
)

// State is the overlay lifecycle.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// Favorites is the part of the favorites store the overlay uses.
type Favorites interface {
	Contains(id string) bool
	Toggle(id string) bool
}

// ExerciseFetcher loads a single exercise.
type ExerciseFetcher interface {
	FetchExercise(ctx context.Context, id string) (catalog.Exercise, error)
}

// Ticket identifies one opening of the overlay. A response is only shown if
// its ticket is still the active one.
type Ticket struct {
	Seq uint64
	ID  string
}

// Response is the outcome of fetching the exercise for a Ticket.
type Response struct {
	Ticket   Ticket
	Exercise catalog.Exercise
	Err      error
}

// Load fetches the exercise for t.
func Load(ctx context.Context, fetcher ExerciseFetcher, t Ticket) Response {
	ex, err := fetcher.FetchExercise(ctx, t.ID)
	return Response{Ticket: t, Exercise: ex, Err: err}
}

// Overlay holds the detail overlay state. It is driven from the UI loop and
// is not safe for concurrent use.
type Overlay struct {
	favorites Favorites

	state    State
	active   Ticket
	seq      uint64
	exercise catalog.Exercise
	err      error
}

// New returns a closed overlay.
func New(favorites Favorites) *Overlay {
	return &Overlay{favorites: favorites}
}

// Open shows the overlay for id in the loading state and returns the ticket
// the caller must fetch for. Any earlier ticket becomes stale.
func (o *Overlay) Open(id string) (Ticket, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Ticket{}, false
	}
	o.seq++
	o.active = Ticket{Seq: o.seq, ID: id}
	o.state = StateLoading
	o.exercise = catalog.Exercise{}
	o.err = nil
	return o.active, true
}

// Resolve applies resp if it belongs to the active ticket and reports
// whether it was applied.
func (o *Overlay) Resolve(resp Response) bool {
	if o.state != StateLoading || resp.Ticket != o.active {
		return false
	}
	if resp.Err != nil {
		o.state = StateFailed
		o.err = resp.Err
		return true
	}
	o.state = StateLoaded
	o.exercise = resp.Exercise
	return true
}

// Close hides the overlay and invalidates the active ticket.
func (o *Overlay) Close() {
	o.state = StateClosed
	o.active = Ticket{}
	o.exercise = catalog.Exercise{}
	o.err = nil
}

// IsOpen reports whether the overlay is visible.
func (o *Overlay) IsOpen() bool { return o.state != StateClosed }

// ActiveID returns the exercise shown, "" when closed.
func (o *Overlay) ActiveID() string { return o.active.ID }

func (o *Overlay) State() State { return o.state }

func (o *Overlay) Err() error { return o.err }

// ToggleOutcome reports the effect of ToggleFavorite.
type ToggleOutcome struct {
	Favorite bool
	// Reload is set when the exercise left the favorites while the favorites
	// page is shown; the overlay has been closed and the page must reload.
	Reload bool
}

// ToggleFavorite flips the active exercise's favorite state.
func (o *Overlay) ToggleFavorite(mode browse.Mode) (ToggleOutcome, bool) {
	if !o.IsOpen() || o.favorites == nil {
		return ToggleOutcome{}, false
	}
	favorite := o.favorites.Toggle(o.active.ID)
	out := ToggleOutcome{Favorite: favorite}
	if !favorite && mode == browse.ModeFavorites {
		o.Close()
		out.Reload = true
	}
	return out, true
}

// StartRating closes the overlay and returns the exercise to rate.
func (o *Overlay) StartRating() (string, bool) {
	if !o.IsOpen() {
		return "", false
	}
	id := o.active.ID
	o.Close()
	return id, true
}

// View is the renderable overlay content.
type View struct {
	Open          bool
	State         State
	ID            string
	Title         string
	Description   string
	ImageURL      string
	Target        string
	BodyPart      string
	Equipment     string
	Popularity    string
	Calories      string
	TimeLabel     string
	RatingLabel   string
	Stars         int
	Favorite      bool
	FavoriteLabel string
}

// View builds the overlay content for the current state.
func (o *Overlay) View() View {
	if !o.IsOpen() {
		return View{}
	}
	v := View{
		Open:        true,
		State:       o.state,
		ID:          o.active.ID,
		Popularity:  "0",
		Calories:    "0",
		TimeLabel:   "/0 min",
		RatingLabel: "0.0",
	}
	if o.favorites != nil {
		v.Favorite = o.favorites.Contains(o.active.ID)
	}
	v.FavoriteLabel = AddFavoriteLabel
	if v.Favorite {
		v.FavoriteLabel = RemoveFavoriteLabel
	}

	switch o.state {
	case StateLoading:
		v.Title = LoadingTitle
	case StateFailed:
		v.Title = ErrorTitle
		v.Description = ErrorDescription
	case StateLoaded:
		ex := o.exercise
		v.Title = ex.Name
		v.Description = ex.Description
		v.ImageURL = ex.GifURL
		v.Target = ex.Target
		v.BodyPart = ex.BodyPart
		v.Equipment = ex.Equipment
		v.Popularity = humanize.Comma(int64(ex.Popularity))
		v.Calories = humanize.Comma(int64(ex.BurnedCalories))
		v.TimeLabel = fmt.Sprintf("/%d min", ex.Time)
		v.RatingLabel = fmt.Sprintf("%.1f", ex.Rating)
		v.Stars = browse.Stars(ex.Rating)
	}
	return v
}
