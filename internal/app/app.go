package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/config"
	"github.com/five82/energy/internal/favorites"
	"github.com/five82/energy/internal/kv"
	"github.com/five82/energy/internal/logging"
	"github.com/five82/energy/internal/nav"
	"github.com/five82/energy/internal/newsletter"
	"github.com/five82/energy/internal/prefs"
	"github.com/five82/energy/internal/quote"
	"github.com/five82/energy/internal/rating"
	"github.com/five82/energy/internal/ui"
	"github.com/five82/energy/internal/validation"
)

// Options configure the energy application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/energy/prefs.toml
	LogLevel   string // overrides the configured level when set
}

// Run boots the energy TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	logger, logCloser := logging.Setup(logging.SetupParams{
		LogFileName: cfg.LogPath(),
		LogLevel:    cfg.LogLevel,
	})
	logger.WithFields(logrus.Fields{
		"api":     cfg.APIBase,
		"storage": cfg.StoragePath(),
	}).Info("energy starting")

	backend, storageCloser := openStorage(cfg.StoragePath(), logger)
	defer func() {
		err = multierr.Combine(err, storageCloser.Close(), logCloser.Close())
	}()

	userPrefs, prefsErr := prefs.Load(opts.PrefsPath)
	if prefsErr != nil {
		logger.WithError(prefsErr).Warn("load preferences, using defaults")
	}

	client, err := catalog.NewClient(cfg.APIBase,
		catalog.WithTimeout(cfg.RequestTimeout),
		catalog.WithRateLimit(cfg.RequestsPerSecond, max(cfg.FavoritesFanOut, 1)),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	cache := kv.New(backend, logger)
	favs := favorites.New(cache)
	v := validation.New()

	uiOpts := ui.Options{
		Context:     ctx,
		Machine:     browse.NewMachine(favs, cfg.PageSize),
		Loader:      browse.NewLoader(client, cfg.FavoritesFanOut, logger),
		Exercises:   client,
		Favorites:   favs,
		Nav:         nav.New(cache),
		Quotes:      quote.New(cache, client, logger),
		Newsletter:  newsletter.New(client, v, logger),
		Rating:      rating.New(client, v, logger),
		SearchDelay: cfg.SearchDebounce,
		Prefs:       userPrefs,
		PrefsPath:   opts.PrefsPath,
		LogPath:     cfg.LogPath(),
		Logger:      logger,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("energy stopped")
	return nil
}

// openStorage opens the on-disk store. When the database cannot be opened
// the session continues on an in-memory store and nothing is persisted.
func openStorage(path string, log logrus.FieldLogger) (kv.Backend, io.Closer) {
	db, err := kv.OpenSQLite(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("open storage, falling back to memory")
		return kv.NewMemoryBackend(), nopCloser{}
	}
	return db, db
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
