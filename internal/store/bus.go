package store

import (
	"sort"
	"sync"
	"time"

	"orgdir/internal/model"
)

// DefaultDebounce is how long a write settles before listeners are told about it.
const DefaultDebounce = 100 * time.Millisecond

// Listener receives the full collection that was just written.
type Listener func(records []model.Record)

// Bus is a publish/subscribe channel keyed by collection key. Publishes are debounced per key:
// a newer publish replaces the pending payload and restarts the delay.
type Bus struct {
	mu       sync.Mutex
	debounce time.Duration
	nextID   int
	subs     map[string]map[int]Listener
	pending  map[string]*pendingPublish
	closed   bool
}

type pendingPublish struct {
	seq     int
	timer   *time.Timer
	payload []model.Record
}

func NewBus(debounce time.Duration) *Bus {
	if debounce < 0 {
		debounce = 0
	}
	return &Bus{
		debounce: debounce,
		subs:     map[string]map[int]Listener{},
		pending:  map[string]*pendingPublish{},
	}
}

var (
	defaultBusOnce sync.Once
	defaultBus     *Bus
)

// DefaultBus is the process-wide bus shared by every Collection that is not given its own.
func DefaultBus() *Bus {
	defaultBusOnce.Do(func() {
		defaultBus = NewBus(DefaultDebounce)
	})
	return defaultBus
}

// SetDebounce changes the delay used by subsequent publishes.
func (b *Bus) SetDebounce(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.mu.Lock()
	b.debounce = d
	b.mu.Unlock()
}

// Subscribe attaches fn to key. The returned func detaches it and is safe to call more than once.
func (b *Bus) Subscribe(key string, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[key] == nil {
		b.subs[key] = map[int]Listener{}
	}
	b.subs[key][id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[key], id)
			if len(b.subs[key]) == 0 {
				delete(b.subs, key)
			}
			b.mu.Unlock()
		})
	}
}

// Listeners reports how many listeners are attached to key.
func (b *Bus) Listeners(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}

// Publish schedules delivery of records to the listeners of key.
func (b *Bus) Publish(key string, records []model.Record) {
	payload := cloneRecords(records)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	seq := 1
	if prev := b.pending[key]; prev != nil {
		prev.timer.Stop()
		seq = prev.seq + 1
	}
	p := &pendingPublish{seq: seq, payload: payload}
	p.timer = time.AfterFunc(b.debounce, func() { b.fire(key, seq) })
	b.pending[key] = p
	b.mu.Unlock()
}

func (b *Bus) fire(key string, seq int) {
	b.mu.Lock()
	p := b.pending[key]
	if p == nil || p.seq != seq || b.closed {
		// Superseded by a newer publish or cancelled by Close.
		b.mu.Unlock()
		return
	}
	delete(b.pending, key)
	listeners := b.listenersLocked(key)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneRecords(p.payload))
	}
}

// Flush delivers every pending publish immediately.
func (b *Bus) Flush() {
	b.mu.Lock()
	keys := make([]string, 0, len(b.pending))
	for k := range b.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	type delivery struct {
		payload   []model.Record
		listeners []Listener
	}
	deliveries := make([]delivery, 0, len(keys))
	for _, k := range keys {
		p := b.pending[k]
		p.timer.Stop()
		delete(b.pending, k)
		deliveries = append(deliveries, delivery{payload: p.payload, listeners: b.listenersLocked(k)})
	}
	b.mu.Unlock()

	for _, d := range deliveries {
		for _, fn := range d.listeners {
			fn(cloneRecords(d.payload))
		}
	}
}

// Pending reports whether a publish for key is waiting on its debounce.
func (b *Bus) Pending(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[key] != nil
}

// Close drops pending publishes and rejects new ones.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for k, p := range b.pending {
		p.timer.Stop()
		delete(b.pending, k)
	}
}

// listenersLocked returns listeners of key in subscription order. Caller holds b.mu.
func (b *Bus) listenersLocked(key string) []Listener {
	subs := b.subs[key]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, subs[id])
	}
	return out
}

func cloneRecords(in []model.Record) []model.Record {
	out := make([]model.Record, len(in))
	copy(out, in)
	return out
}
