package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"orgdir/internal/model"

	"go.uber.org/zap"
)

// ErrEmptyName is returned when a record without a usable name is added.
var ErrEmptyName = errors.New("name is empty")

// Collection is an ordered, fully-replaced sequence of records persisted under one key.
// Every successful write is followed by a (debounced) publish on the bus.
type Collection struct {
	key     string
	backend Backend
	bus     *Bus
	log     *zap.Logger
	now     func() time.Time
	mu      *sync.Mutex
}

type CollectionOpts struct {
	Key     string
	Backend Backend

	// Bus defaults to DefaultBus().
	Bus *Bus
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewCollection(opts CollectionOpts) *Collection {
	bus := opts.Bus
	if bus == nil {
		bus = DefaultBus()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Collection{
		key:     opts.Key,
		backend: opts.Backend,
		bus:     bus,
		log:     log.With(zap.String("collection", opts.Key)),
		now:     now,
		mu:      writeLock(opts.Key),
	}
}

var (
	writeLocksMu sync.Mutex
	writeLocks   = map[string]*sync.Mutex{}
)

// writeLock serializes read-modify-write cycles on the same key across Collection values.
func writeLock(key string) *sync.Mutex {
	writeLocksMu.Lock()
	defer writeLocksMu.Unlock()
	mu := writeLocks[key]
	if mu == nil {
		mu = &sync.Mutex{}
		writeLocks[key] = mu
	}
	return mu
}

func (c *Collection) Key() string { return c.key }

func (c *Collection) Bus() *Bus { return c.bus }

// Subscribe attaches fn to this collection's key on the bus.
func (c *Collection) Subscribe(fn Listener) func() {
	return c.bus.Subscribe(c.key, fn)
}

// Read returns the persisted sequence. Missing or unreadable data reads as empty.
func (c *Collection) Read(ctx context.Context) []model.Record {
	b, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("read collection failed; treating as empty", zap.Error(err))
		return []model.Record{}
	}
	if !ok || len(strings.TrimSpace(string(b))) == 0 {
		return []model.Record{}
	}
	var recs []model.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		c.log.Warn("decode collection failed; treating as empty", zap.Error(err))
		return []model.Record{}
	}
	if recs == nil {
		return []model.Record{}
	}
	return recs
}

// Write replaces the persisted sequence and schedules a publish carrying it.
func (c *Collection) Write(ctx context.Context, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.backend.Put(ctx, c.key, b); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	c.bus.Publish(c.key, records)
	return nil
}

// AddOne appends rec unless a record with the same normalized name (or the same id) exists,
// in which case the existing record is returned unchanged.
func (c *Collection) AddOne(ctx context.Context, rec model.Record) (model.Record, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return model.Record{}, ErrEmptyName
	}
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = rec.Name
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = c.now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs := c.Read(ctx)
	for _, existing := range recs {
		if model.SameName(existing.Name, rec.Name) || existing.ID == rec.ID {
			return existing, nil
		}
	}
	recs = append(recs, rec)
	if err := c.Write(ctx, recs); err != nil {
		return model.Record{}, err
	}
	c.log.Debug("record added", zap.String("id", rec.ID), zap.String("name", rec.Name))
	return rec, nil
}

// Remove deletes the record with id. A miss writes nothing.
func (c *Collection) Remove(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs := c.Read(ctx)
	out := make([]model.Record, 0, len(recs))
	for _, r := range recs {
		if r.ID == id {
			continue
		}
		out = append(out, r)
	}
	if len(out) == len(recs) {
		return false, nil
	}
	if err := c.Write(ctx, out); err != nil {
		return false, err
	}
	return true, nil
}

// Find returns the record with id.
func (c *Collection) Find(ctx context.Context, id string) (model.Record, bool) {
	id = strings.TrimSpace(id)
	for _, r := range c.Read(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}
