package cli

import (
	"context"
	"fmt"
	"strings"

	"orgdir/internal/config"
	"orgdir/internal/corpus"
	"orgdir/internal/directory"
	"orgdir/internal/logging"
	"orgdir/internal/store"

	"go.uber.org/zap"
)

// env is everything a command needs, built once from config and flags.
type env struct {
	cfg       *config.Config
	log       *zap.Logger
	bus       *store.Bus
	directory *directory.Directory
	watcher   *store.Watcher
}

func loadConfig(app *App) (*config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	if d := strings.TrimSpace(app.Dir); d != "" {
		cfg.Store.Dir = d
	}
	if b := strings.TrimSpace(app.Backend); b != "" {
		cfg.Store.Backend = b
		if b != config.BackendFile {
			cfg.Store.Watch = false
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newBackend(cfg *config.Config) store.Backend {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteBackend(cfg.Store.Dir)
	case config.BackendMemory:
		return store.NewMemoryBackend()
	default:
		return store.FileBackend{Dir: cfg.Store.Dir}
	}
}

// openEnv wires config, logging, storage and the directory. interactive starts the store
// watcher when the config asks for it.
func openEnv(ctx context.Context, app *App, interactive bool) (*env, error) {
	if app.env != nil {
		return app.env, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	bus := store.DefaultBus()
	bus.SetDebounce(cfg.Store.Debounce)

	backend := newBackend(cfg)
	categories := store.NewCollection(store.CollectionOpts{Key: store.KeyCustomCategories, Backend: backend, Bus: bus, Logger: log})
	organizations := store.NewCollection(store.CollectionOpts{Key: store.KeyCustomOrganizations, Backend: backend, Bus: bus, Logger: log})

	e := &env{
		cfg: cfg,
		log: log,
		bus: bus,
		directory: directory.New(directory.Opts{
			Categories:    categories,
			Organizations: organizations,
			Corpus:        corpus.JSONLFile{Path: cfg.Corpus.Path},
			Self:          cfg.Directory.Self,
			Logger:        log,
		}),
	}

	if interactive && cfg.Store.Watch {
		fb, ok := backend.(store.FileBackend)
		if ok {
			w, err := store.NewWatcher(fb, log, categories, organizations)
			if err != nil {
				return nil, fmt.Errorf("watch store: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				w.Stop()
				return nil, fmt.Errorf("watch store: %w", err)
			}
			e.watcher = w
		}
	}

	log.Debug("environment ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("store_dir", cfg.Store.Dir),
		zap.String("corpus", cfg.Corpus.Path),
	)
	app.env = e
	return e, nil
}

// Close delivers pending broadcasts and stops the watcher.
func (e *env) Close() {
	e.bus.Flush()
	if e.watcher != nil {
		e.watcher.Stop()
	}
	_ = e.log.Sync()
}
