package subscription

import (
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/store"
)

// Order controls how a feed sorts each snapshot before delivery.
type Order int

const (
	// OrderCreated keeps the store's creation order (oldest first).
	OrderCreated Order = iota
	// OrderLevelDesc sorts by the numeric "level" field, highest first.
	OrderLevelDesc
	// OrderNewestFirst sorts by createdAt, newest first.
	OrderNewestFirst
)

// OrderFor returns the default presentation order for a collection.
// Skills show strongest first, reviews newest first, everything else in
// the order it was created.
func OrderFor(collection string) Order {
	switch collection {
	case content.CollectionSkills:
		return OrderLevelDesc
	case content.CollectionReviews:
		return OrderNewestFirst
	default:
		return OrderCreated
	}
}

// Coordinator opens live feeds over a document store. Each feed owns one
// store subscription and one delivery channel; closing the feed releases
// both.
type Coordinator struct {
	store store.Store
}

func NewCoordinator(st store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// Feed delivers full collection snapshots on C. The channel holds at most
// one pending snapshot; when the consumer lags, older snapshots are
// dropped so only the latest state is ever delivered.
type Feed struct {
	C chan []store.Fields

	order  Order
	cancel func()

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

// Open subscribes to a collection with its default order.
func (c *Coordinator) Open(collection string) (*Feed, error) {
	return c.OpenOrdered(collection, OrderFor(collection))
}

// OpenOrdered subscribes to a collection with an explicit order. The
// first snapshot arrives without waiting for a change.
func (c *Coordinator) OpenOrdered(collection string, order Order) (*Feed, error) {
	f := &Feed{
		C:     make(chan []store.Fields, 1),
		order: order,
	}
	cancel, err := c.store.Subscribe(collection, f.deliver)
	if err != nil {
		return nil, err
	}
	f.cancel = cancel
	return f, nil
}

func (f *Feed) deliver(docs []store.Document) {
	snapshot := make([]store.Fields, 0, len(docs))
	for _, d := range docs {
		snapshot = append(snapshot, d.Record())
	}
	sortSnapshot(snapshot, f.order)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	// replace any undelivered snapshot with the newer one
	select {
	case <-f.C:
	default:
	}
	f.C <- snapshot
}

// Close tears the feed down: the store subscription is cancelled and C is
// closed. Safe to call more than once.
func (f *Feed) Close() {
	f.once.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		f.cancel()
		close(f.C)
	})
}

func sortSnapshot(snapshot []store.Fields, order Order) {
	switch order {
	case OrderLevelDesc:
		sort.SliceStable(snapshot, func(i, j int) bool {
			return numberField(snapshot[i], "level") > numberField(snapshot[j], "level")
		})
	case OrderNewestFirst:
		sort.SliceStable(snapshot, func(i, j int) bool {
			return timeField(snapshot[i], "createdAt").After(timeField(snapshot[j], "createdAt"))
		})
	}
}

func numberField(rec store.Fields, name string) float64 {
	switch v := rec[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func timeField(rec store.Fields, name string) time.Time {
	switch t := rec[name].(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	default:
		return time.Time{}
	}
}
