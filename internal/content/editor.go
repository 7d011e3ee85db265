package content

import (
	"context"
	"errors"
	"sync"
)

// State is the position of an Editor in the draft lifecycle.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	// ErrNotEditing is returned by SetDraft and Submit outside the Editing state.
	ErrNotEditing = errors.New("no draft is being edited")
	// ErrSubmitInFlight rejects a second submit while the first one is running.
	ErrSubmitInFlight = errors.New("a submit is already in flight")
)

// Editor holds one admin form draft.
//
//	Empty --StartCreate/StartEdit--> Editing --Submit--> Submitting
//	Submitting --ok--> Empty
//	Submitting --error--> Editing (draft kept for a retry)
type Editor[R Record[R]] struct {
	ctrl *Controller[R]

	mu      sync.Mutex
	state   State
	draft   R
	lastErr error
}

// NewEditor returns an empty editor writing through c.
func (c *Controller[R]) NewEditor() *Editor[R] {
	return &Editor[R]{ctrl: c}
}

// StartCreate opens a blank draft without an Id.
func (e *Editor[R]) StartCreate() error {
	var zero R
	return e.start(zero)
}

// StartEdit opens a draft copied from rec, keeping its Id.
func (e *Editor[R]) StartEdit(rec R) error {
	return e.start(rec)
}

func (e *Editor[R]) start(draft R) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	e.state = StateEditing
	e.draft = draft
	e.lastErr = nil
	return nil
}

// SetDraft replaces the draft fields. The Id chosen by StartCreate/StartEdit is kept.
func (e *Editor[R]) SetDraft(fields R) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.draft = fields.WithIdentity(e.draft.Identity())
	return nil
}

// Submit creates (no Id) or updates (Id) the draft. It returns the record Id.
// The submitting state is always left, whatever the outcome.
func (e *Editor[R]) Submit(ctx context.Context) (id string, err error) {
	e.mu.Lock()
	switch e.state {
	case StateSubmitting:
		e.mu.Unlock()
		return "", ErrSubmitInFlight
	case StateEmpty:
		e.mu.Unlock()
		return "", ErrNotEditing
	}
	e.state = StateSubmitting
	draft := e.draft
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if err != nil {
			e.state = StateEditing
			e.lastErr = err
			return
		}
		var zero R
		e.state = StateEmpty
		e.draft = zero
		e.lastErr = nil
	}()

	if draft.Identity() == "" {
		return e.ctrl.Create(ctx, draft)
	}
	id = draft.Identity()
	return id, e.ctrl.Update(ctx, id, draft)
}

// State returns the current lifecycle state.
func (e *Editor[R]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Draft returns the current draft (zero when Empty).
func (e *Editor[R]) Draft() R {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Err returns the error of the last failed submit.
func (e *Editor[R]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}
