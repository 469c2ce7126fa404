package store

import (
	"context"
	"errors"
)

var (
	// ErrMissingID is returned before any network call when a delete (or a
	// targeted read) is attempted without a document id. Deleting with an
	// empty id would otherwise be a silent no-op, which hides real bugs.
	ErrMissingID = errors.New("document id is missing")

	// ErrNotFound is returned by GetOnce when the document does not exist.
	// Distinct from an empty document so callers can apply defaults.
	ErrNotFound = errors.New("document not found")

	// ErrPermissionDenied is returned by a guarded store when the caller is
	// not allowed to write to the collection.
	ErrPermissionDenied = errors.New("permission denied")
)

// Fields is the schemaless payload of a single document.
type Fields map[string]any

// Document is one record in a named collection.
type Document struct {
	ID     string
	Fields Fields
}

// SnapshotFunc receives the full current contents of a collection every time
// any document in it changes. Snapshots are complete state, never diffs.
type SnapshotFunc func(docs []Document)

// Store is the document store contract the rest of the service is written
// against. Two implementations exist: MemoryStore (tests, local dev) and
// MongoStore.
type Store interface {
	// Upsert creates the document when id is empty (returning the generated
	// id) and otherwise merges fields into the existing document. Fields not
	// present in the payload are left untouched.
	Upsert(ctx context.Context, collection, id string, fields Fields) (string, error)
	// Delete removes a document by id. An empty id fails with ErrMissingID
	// before any I/O happens. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// List returns the full current contents of a collection in creation
	// order.
	List(ctx context.Context, collection string) ([]Document, error)
	// GetOnce is a one-shot read for singleton documents, ErrNotFound when
	// the document does not exist.
	GetOnce(ctx context.Context, collection, id string) (Fields, error)
	// Subscribe registers a realtime listener. The callback fires once with
	// the current snapshot and again after every change until the returned
	// cancel func is invoked. Cancel permanently stops delivery.
	Subscribe(collection string, fn SnapshotFunc) (func(), error)
}

// Clone returns a shallow per-key copy of f, so callers can hand snapshots
// out without sharing the underlying map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record flattens a document into a single map with the id injected under
// "id", the shape consumers render from.
func (d Document) Record() Fields {
	rec := d.Fields.Clone()
	if rec == nil {
		rec = Fields{}
	}
	rec["id"] = d.ID
	return rec
}

// WriteRule decides whether the caller bound to ctx may write to collection.
type WriteRule func(ctx context.Context, collection string) error
