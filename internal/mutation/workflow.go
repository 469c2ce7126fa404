package mutation

import (
	"context"
	"errors"
	"sync"

	"github.com/editfolio/editfolio-backend/internal/content"
	"github.com/editfolio/editfolio-backend/internal/store"
	"github.com/editfolio/editfolio-backend/pkg/logger"
)

// Phase is the workflow's lifecycle position. Within one workflow
// Validating always precedes Saving, which always precedes Success or
// Error. Across workflows there is no ordering; the store's last write
// wins at the field level.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEditing    Phase = "editing"
	PhaseValidating Phase = "validating"
	PhaseSaving     Phase = "saving"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

var (
	ErrNotIdle      = errors.New("an edit is already in progress")
	ErrNotEditing   = errors.New("no edit in progress")
	ErrNotConfirmed = errors.New("delete requires confirmation")
)

// Workflow drives a single create-or-update edit against one collection.
// A failed submit keeps the draft so the caller can fix it and resubmit;
// a successful submit clears it and the workflow returns to idle.
type Workflow struct {
	accessor *content.Accessor

	mu         sync.Mutex
	phase      Phase
	collection string
	draft      store.Fields
	lastErr    error
}

func NewWorkflow(acc *content.Accessor) *Workflow {
	return &Workflow{accessor: acc, phase: PhaseIdle}
}

// Edit starts editing a draft. Pass a record with an "id" field to update
// an existing document, or without one to create. Only one edit can be in
// flight per workflow.
func (w *Workflow) Edit(collection string, seed store.Fields) error {
	if _, ok := content.SchemaFor(collection); !ok {
		return content.ErrUnknownCollection
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseIdle {
		return ErrNotIdle
	}
	w.phase = PhaseEditing
	w.collection = collection
	w.draft = seed.Clone()
	if w.draft == nil {
		w.draft = store.Fields{}
	}
	w.lastErr = nil
	return nil
}

// SetField updates one draft field. After a failed submit this resumes
// editing the preserved draft.
func (w *Workflow) SetField(name string, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseEditing && w.phase != PhaseError {
		return ErrNotEditing
	}
	w.phase = PhaseEditing
	w.draft[name] = value
	return nil
}

// Submit validates and saves the draft. On success the workflow settles
// back at PhaseIdle and returns the saved id. On failure it settles at
// PhaseError with the draft intact and the error available via Err.
func (w *Workflow) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseEditing && w.phase != PhaseError {
		return "", ErrNotEditing
	}

	w.phase = PhaseValidating
	schema, _ := content.SchemaFor(w.collection)
	id, _ := w.draft["id"].(string)
	if id == "" {
		if err := schema.Validate(w.draft); err != nil {
			return "", w.fail(err)
		}
	} else if err := schema.ValidateMerge(w.draft); err != nil {
		return "", w.fail(err)
	}

	w.phase = PhaseSaving
	id, err := w.accessor.Save(ctx, w.collection, w.draft)
	if err != nil {
		return "", w.fail(err)
	}

	// success is transient; the workflow settles back at idle
	w.phase = PhaseIdle
	w.collection = ""
	w.draft = nil
	w.lastErr = nil
	return id, nil
}

// fail parks the workflow in PhaseError with the draft intact. Touching
// the draft again moves it back to PhaseEditing. Callers hold w.mu.
func (w *Workflow) fail(err error) error {
	w.phase = PhaseError
	w.lastErr = err
	return err
}

// Cancel discards the draft and returns to idle.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = PhaseIdle
	w.collection = ""
	w.draft = nil
	w.lastErr = nil
}

// Delete removes a document. It is a single step with no draft, gated
// behind an explicit confirmation; a missing id is rejected loudly
// before the store is touched.
func (w *Workflow) Delete(ctx context.Context, collection, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := w.accessor.Remove(ctx, collection, id); err != nil {
		logger.Errorf("delete from %s failed: %v", collection, err)
		return err
	}
	return nil
}

// Phase returns the current lifecycle position.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Draft returns a copy of the in-progress draft, or nil when idle.
func (w *Workflow) Draft() store.Fields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Err returns the error from the most recent failed submit.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}
