package store

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher republishes collections that another process rewrote in a FileBackend directory.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	backend     FileBackend
	collections map[string]*Collection
	log         *zap.Logger
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher watches backend.Dir for changes to the given collections.
func NewWatcher(backend FileBackend, log *zap.Logger, collections ...*Collection) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	byKey := make(map[string]*Collection, len(collections))
	for _, c := range collections {
		if c != nil {
			byKey[c.Key()] = c
		}
	}
	return &Watcher{
		watcher:     w,
		backend:     backend,
		collections: byKey,
		log:         log,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. It is a no-op when already running.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.backend.Ensure(); err != nil {
		return err
	}
	if err := w.watcher.Add(w.backend.Dir); err != nil {
		return err
	}
	w.log.Debug("watching store dir", zap.String("dir", w.backend.Dir))

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("close watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	key, ok := w.backend.keyForPath(event.Name)
	if !ok {
		return
	}
	c := w.collections[key]
	if c == nil {
		return
	}
	// Bus publishes are debounced per key, so our own writes coalesce with this one.
	c.bus.Publish(key, c.Read(ctx))
}
