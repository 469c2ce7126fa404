package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory document store used for unit tests and local
// development. It keeps creation order per collection and fans full
// snapshots out to registered listeners on every change.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
	subs        map[string]map[int]SnapshotFunc
	nextSub     int
}

type memCollection struct {
	order []string
	docs  map[string]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memCollection),
		subs:        make(map[string]map[int]SnapshotFunc),
	}
}

func (m *MemoryStore) coll(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]Fields)}
		m.collections[name] = c
	}
	return c
}

func (m *MemoryStore) Upsert(ctx context.Context, collection, id string, fields Fields) (string, error) {
	m.mu.Lock()
	c := m.coll(collection)
	if id == "" {
		id = uuid.NewString()
	}
	existing, ok := c.docs[id]
	if !ok {
		c.docs[id] = fields.Clone()
		c.order = append(c.order, id)
	} else {
		for k, v := range fields {
			existing[k] = v
		}
	}
	listeners, snapshot := m.listenersLocked(collection)
	m.mu.Unlock()

	notify(listeners, snapshot)
	return id, nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return ErrMissingID
	}
	m.mu.Lock()
	c := m.coll(collection)
	if _, ok := c.docs[id]; !ok {
		m.mu.Unlock()
		return nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	listeners, snapshot := m.listenersLocked(collection)
	m.mu.Unlock()

	notify(listeners, snapshot)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(collection), nil
}

func (m *MemoryStore) GetOnce(ctx context.Context, collection, id string) (Fields, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	f, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f.Clone(), nil
}

func (m *MemoryStore) Subscribe(collection string, fn SnapshotFunc) (func(), error) {
	m.mu.Lock()
	if m.subs[collection] == nil {
		m.subs[collection] = make(map[int]SnapshotFunc)
	}
	key := m.nextSub
	m.nextSub++
	m.subs[collection][key] = fn
	snapshot := m.snapshotLocked(collection)
	m.mu.Unlock()

	// initial snapshot, delivered before any further change
	fn(snapshot)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs[collection], key)
			m.mu.Unlock()
		})
	}
	return cancel, nil
}

// snapshotLocked builds a full copy of the collection in creation order.
// Caller must hold at least a read lock.
func (m *MemoryStore) snapshotLocked(collection string) []Document {
	c, ok := m.collections[collection]
	if !ok {
		return []Document{}
	}
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Document{ID: id, Fields: c.docs[id].Clone()})
	}
	return out
}

func (m *MemoryStore) listenersLocked(collection string) ([]SnapshotFunc, []Document) {
	subs := m.subs[collection]
	if len(subs) == 0 {
		return nil, nil
	}
	listeners := make([]SnapshotFunc, 0, len(subs))
	for _, fn := range subs {
		listeners = append(listeners, fn)
	}
	return listeners, m.snapshotLocked(collection)
}

// notify runs outside the store lock so a listener can call back into the
// store without deadlocking.
func notify(listeners []SnapshotFunc, snapshot []Document) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
