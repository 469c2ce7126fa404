package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/pkg/logger"
)

// ErrUnknownCollection is returned for collection names outside the managed
// set, before any store call.
var ErrUnknownCollection = fmt.Errorf("unknown collection")

// Accessor is the single surface every collection is read and written
// through. It validates against the collection schema, coerces declared
// numeric fields and stamps timestamps; the subscription and mutation
// layers never talk to the store client directly.
type Accessor struct {
	store store.Store
	now   func() time.Time
}

func NewAccessor(st store.Store) *Accessor {
	return &Accessor{store: st, now: time.Now}
}

// Save upserts a record. A record carrying a truthy "id" is merge-updated;
// a record without one is created with a store-generated id. updatedAt is
// stamped on every save, createdAt only on create.
func (a *Accessor) Save(ctx context.Context, collection string, rec store.Fields) (string, error) {
	schema, ok := SchemaFor(collection)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	fields := rec.Clone()
	id, _ := fields["id"].(string)
	delete(fields, "id")

	// a create must carry every required field; a merge-update is only
	// checked on the fields it actually sets
	if id == "" {
		if err := schema.Validate(fields); err != nil {
			return "", err
		}
	} else {
		if err := schema.ValidateMerge(fields); err != nil {
			return "", err
		}
	}
	if err := schema.Coerce(fields); err != nil {
		return "", err
	}

	now := a.now().UTC()
	fields["updatedAt"] = now
	if id == "" {
		fields["createdAt"] = now
	}

	saved, err := a.store.Upsert(ctx, collection, id, fields)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", collection, err)
	}
	return saved, nil
}

// Remove deletes a record by id. An empty id is rejected loudly before any
// store call; a silent no-op here has hidden whole-collection bugs before.
func (a *Accessor) Remove(ctx context.Context, collection, id string) error {
	if _, ok := SchemaFor(collection); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if id == "" {
		logger.Errorf("attempted to delete from %s without an id", collection)
		return store.ErrMissingID
	}
	if err := a.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Query returns the full current contents of a collection as flat records
// (id injected under "id").
func (a *Accessor) Query(ctx context.Context, collection string) ([]store.Fields, error) {
	if _, ok := SchemaFor(collection); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	docs, err := a.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]store.Fields, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Record())
	}
	return out, nil
}

// Store exposes the underlying store for the subscription layer.
func (a *Accessor) Store() store.Store { return a.store }

// --- Typed convenience wrappers. These pin the collection name so call
// sites cannot typo a collection path. Optional zero-value fields are
// omitted from the payload, keeping merge semantics intact.

func (a *Accessor) SavePortfolioItem(ctx context.Context, item PortfolioItem) (string, error) {
	return a.Save(ctx, CollectionPortfolioItems, toFields(item))
}

func (a *Accessor) DeletePortfolioItem(ctx context.Context, id string) error {
	return a.Remove(ctx, CollectionPortfolioItems, id)
}

// SaveSection creates a new section from a bare name, the only shape the
// admin surface submits.
func (a *Accessor) SaveSection(ctx context.Context, name string) (string, error) {
	return a.Save(ctx, CollectionSections, store.Fields{"name": name})
}

func (a *Accessor) DeleteSection(ctx context.Context, id string) error {
	return a.Remove(ctx, CollectionSections, id)
}

func (a *Accessor) SaveSkill(ctx context.Context, s Skill) (string, error) {
	return a.Save(ctx, CollectionSkills, toFields(s))
}

func (a *Accessor) SaveStat(ctx context.Context, s Stat) (string, error) {
	return a.Save(ctx, CollectionStats, toFields(s))
}

func (a *Accessor) SaveServiceEntry(ctx context.Context, s ServiceEntry) (string, error) {
	return a.Save(ctx, CollectionServices, toFields(s))
}

func (a *Accessor) SaveServiceListItem(ctx context.Context, s ServiceListItem) (string, error) {
	return a.Save(ctx, CollectionServiceList, toFields(s))
}

func (a *Accessor) SaveReview(ctx context.Context, r Review) (string, error) {
	return a.Save(ctx, CollectionReviews, toFields(r))
}

func (a *Accessor) SaveFAQ(ctx context.Context, f FAQ) (string, error) {
	return a.Save(ctx, CollectionFAQs, toFields(f))
}

// toFields flattens a typed record through its json tags. Timestamps are
// dropped so the accessor remains the only writer of createdAt/updatedAt.
func toFields(v any) store.Fields {
	raw, err := json.Marshal(v)
	if err != nil {
		// model types marshal cleanly; reaching this is a programming error
		logger.Errorf("record marshal failed: %v", err)
		return store.Fields{}
	}
	var fields store.Fields
	_ = json.Unmarshal(raw, &fields)
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	return fields
}
