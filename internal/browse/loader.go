package browse

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/energy/internal/catalog"
)

// DefaultFanOut bounds concurrent detail fetches in favorites mode.
const DefaultFanOut = 6

// Loader performs machine requests against the catalog API.
type Loader struct {
	fetcher catalog.Fetcher
	fanOut  int
	log     logrus.FieldLogger
}

// NewLoader builds a Loader. A non-positive fanOut uses DefaultFanOut.
func NewLoader(fetcher catalog.Fetcher, fanOut int, log logrus.FieldLogger) *Loader {
	if fanOut <= 0 {
		fanOut = DefaultFanOut
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{fetcher: fetcher, fanOut: fanOut, log: log}
}

// Load runs req and returns its Result. Errors are reported in Result.Err.
func (l *Loader) Load(ctx context.Context, req Request) Result {
	res := Result{Gen: req.Gen, Kind: req.Kind}
	switch req.Kind {
	case RequestCategories:
		page, err := l.fetcher.FetchCategories(ctx, req.Filter, req.Page)
		if err != nil {
			l.log.WithError(err).WithFields(logrus.Fields{
				"filter": req.Filter,
				"page":   req.Page,
			}).Error("load categories failed")
			res.Err = err
			return res
		}
		res.Categories = page.Categories
		res.TotalPages = page.TotalPages
	case RequestExercises:
		page, err := l.fetcher.FetchExercises(ctx, catalog.ExerciseQuery{
			Filter:   req.Filter,
			Category: req.Category,
			Page:     req.Page,
			Limit:    req.Limit,
			Keyword:  req.Keyword,
		})
		if err != nil {
			l.log.WithError(err).WithFields(logrus.Fields{
				"filter":   req.Filter,
				"category": req.Category,
				"page":     req.Page,
			}).Error("load exercises failed")
			res.Err = err
			return res
		}
		res.Exercises = page.Exercises
		res.TotalPages = page.TotalPages
	case RequestFavorites:
		res.Exercises = l.loadFavorites(ctx, req.IDs)
		res.TotalPages = 1
	}
	return res
}

// loadFavorites fetches every id concurrently and keeps the successful
// results in id order. Individual failures are logged and skipped.
func (l *Loader) loadFavorites(ctx context.Context, ids []string) []catalog.Exercise {
	fetched := make([]*catalog.Exercise, len(ids))

	var g errgroup.Group
	g.SetLimit(l.fanOut)
	for i, id := range ids {
		g.Go(func() error {
			ex, err := l.fetcher.FetchExercise(ctx, id)
			if err != nil {
				l.log.WithError(err).WithField("id", id).Warn("load favorite failed")
				return nil
			}
			fetched[i] = &ex
			return nil
		})
	}
	_ = g.Wait()

	out := make([]catalog.Exercise, 0, len(ids))
	for _, ex := range fetched {
		if ex != nil {
			out = append(out, *ex)
		}
	}
	return out
}
