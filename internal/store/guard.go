package store

import "context"

// guardedStore wraps another Store and applies a WriteRule to every
// mutation. The permission gate in the handler layer is the primary check;
// this is the defense-in-depth layer that rejects writes even when a UI
// path is bypassed.
type guardedStore struct {
	inner Store
	rule  WriteRule
}

// Guarded returns a store that consults rule before Upsert and Delete.
// Reads and subscriptions pass through untouched.
func Guarded(inner Store, rule WriteRule) Store {
	return &guardedStore{inner: inner, rule: rule}
}

func (g *guardedStore) Upsert(ctx context.Context, collection, id string, fields Fields) (string, error) {
	if err := g.rule(ctx, collection); err != nil {
		return "", err
	}
	return g.inner.Upsert(ctx, collection, id, fields)
}

func (g *guardedStore) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		// keep the loud local error ahead of the permission check
		return ErrMissingID
	}
	if err := g.rule(ctx, collection); err != nil {
		return err
	}
	return g.inner.Delete(ctx, collection, id)
}

func (g *guardedStore) List(ctx context.Context, collection string) ([]Document, error) {
	return g.inner.List(ctx, collection)
}

func (g *guardedStore) GetOnce(ctx context.Context, collection, id string) (Fields, error) {
	return g.inner.GetOnce(ctx, collection, id)
}

func (g *guardedStore) Subscribe(collection string, fn SnapshotFunc) (func(), error) {
	return g.inner.Subscribe(collection, fn)
}
