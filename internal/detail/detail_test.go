package detail

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/favorites"
	"github.com/five82/energy/internal/kv"
)

type stubFetcher map[string]catalog.Exercise

func (s stubFetcher) FetchExercise(_ context.Context, id string) (catalog.Exercise, error) {
	ex, ok := s[id]
	if !ok {
		return catalog.Exercise{}, errors.New("not found")
	}
	return ex, nil
}

func newFavorites(t *testing.T) *favorites.Store {
	t.Helper()
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return favorites.New(kv.New(kv.NewMemoryBackend(), l))
}

func TestOpenShowsLoadingThenExercise(t *testing.T) {
	o := New(newFavorites(t))
	fetcher := stubFetcher{"e1": {
		ID: "e1", Name: "air bike", Target: "abs", BodyPart: "waist", Equipment: "body weight",
		Popularity: 12345, BurnedCalories: 312, Time: 3, Rating: 4.46, Description: "Lie flat.", GifURL: "https://img/e1.gif",
	}}

	ticket, ok := o.Open("e1")
	require.True(t, ok)
	v := o.View()
	require.True(t, v.Open)
	require.Equal(t, LoadingTitle, v.Title)
	require.Equal(t, "0.0", v.RatingLabel)
	require.Equal(t, "/0 min", v.TimeLabel)
	require.Equal(t, AddFavoriteLabel, v.FavoriteLabel)

	require.True(t, o.Resolve(Load(context.Background(), fetcher, ticket)))
	v = o.View()
	require.Equal(t, StateLoaded, v.State)
	require.Equal(t, "air bike", v.Title)
	require.Equal(t, "12,345", v.Popularity)
	require.Equal(t, "312", v.Calories)
	require.Equal(t, "/3 min", v.TimeLabel)
	require.Equal(t, "4.5", v.RatingLabel)
	require.Equal(t, 4, v.Stars)
	require.Equal(t, "https://img/e1.gif", v.ImageURL)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	o := New(newFavorites(t))
	fetcher := stubFetcher{"a": {ID: "a", Name: "first"}, "b": {ID: "b", Name: "second"}}

	first, _ := o.Open("a")
	second, _ := o.Open("b")

	require.False(t, o.Resolve(Load(context.Background(), fetcher, first)))
	require.Equal(t, LoadingTitle, o.View().Title)
	require.True(t, o.Resolve(Load(context.Background(), fetcher, second)))
	require.Equal(t, "second", o.View().Title)

	reopened, _ := o.Open("a")
	o.Close()
	require.False(t, o.Resolve(Load(context.Background(), fetcher, reopened)), "closed overlay ignores responses")
	require.False(t, o.View().Open)

	again, _ := o.Open("a")
	require.NotEqual(t, reopened, again, "reopening the same id issues a new ticket")
}

func TestFailureShowsErrorText(t *testing.T) {
	o := New(newFavorites(t))
	ticket, _ := o.Open("missing")
	require.True(t, o.Resolve(Load(context.Background(), stubFetcher{}, ticket)))

	v := o.View()
	require.Equal(t, StateFailed, v.State)
	require.Equal(t, ErrorTitle, v.Title)
	require.Equal(t, ErrorDescription, v.Description)
	require.Error(t, o.Err())
}

func TestToggleFavorite(t *testing.T) {
	store := newFavorites(t)
	o := New(store)

	_, ok := o.ToggleFavorite(browse.ModeHome)
	require.False(t, ok, "closed overlay has no active exercise")

	o.Open("e1")
	out, ok := o.ToggleFavorite(browse.ModeHome)
	require.True(t, ok)
	require.Equal(t, ToggleOutcome{Favorite: true}, out)
	require.Equal(t, RemoveFavoriteLabel, o.View().FavoriteLabel)

	out, _ = o.ToggleFavorite(browse.ModeHome)
	require.Equal(t, ToggleOutcome{}, out)
	require.True(t, o.IsOpen(), "home page keeps the overlay open")

	store.Add("e1")
	out, _ = o.ToggleFavorite(browse.ModeFavorites)
	require.Equal(t, ToggleOutcome{Favorite: false, Reload: true}, out)
	require.False(t, o.IsOpen())
	require.Empty(t, store.IDs())
}

func TestStartRatingClosesOverlay(t *testing.T) {
	o := New(newFavorites(t))
	_, ok := o.StartRating()
	require.False(t, ok)

	o.Open("e9")
	id, ok := o.StartRating()
	require.True(t, ok)
	require.Equal(t, "e9", id)
	require.False(t, o.IsOpen())
	require.Empty(t, o.ActiveID())
}

func TestOpenRejectsBlankID(t *testing.T) {
	o := New(nil)
	_, ok := o.Open("  ")
	require.False(t, ok)
	require.False(t, o.IsOpen())
}
