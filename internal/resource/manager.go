// Package resource implements the generic list/create/update/delete manager
// behind every back-office screen.
//
// A Manager keeps a local reflection of a table, a dialog state and a queue
// of user notices. Each manager belongs to a single caller.
package resource

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cortejtech/agency-admin/internal/store"
)

// Record is a row with a store assigned numeric id.
type Record interface {
	PrimaryKey() uint64
}

// Store is the subset of store.Table a manager needs.
type Store[T any] interface {
	Name() string
	Select(ctx context.Context, q store.Query) ([]T, error)
	Insert(ctx context.Context, rows ...*T) error
	Update(ctx context.Context, row *T, filters ...store.Filter) (int64, error)
	Delete(ctx context.Context, filters ...store.Filter) (int64, error)
}

// Definition configures a manager for one entity.
type Definition[T Record] struct {
	// Label is the singular display name, e.g. "Service".
	Label string
	// Required lists json names of fields that must be non-empty.
	Required []string
	// Order of List. Defaults to id ascending.
	Order []store.Order
	// NewDraft returns the default shape of a new record. Defaults to the zero value.
	NewDraft func() T
	// Prepare fills derived fields after normalization and before validation.
	Prepare func(*T)
	// NoRelist skips reloading the table after a create or update; the
	// written record is applied to the items instead.
	NoRelist bool
}

// Manager drives one entity.
type Manager[T Record] struct {
	def      Definition[T]
	store    Store[T]
	required []requiredField

	mu      sync.Mutex
	busy    bool
	items   []T
	state   State
	notices []Notice
}

// New creates a manager. It fails when a required field is not a json field of T.
func New[T Record](def Definition[T], s Store[T]) (*Manager[T], error) {
	required, err := lookupRequired(reflect.TypeFor[T](), def.Required)
	if err != nil {
		return nil, err
	}

	if def.Label == "" {
		def.Label = reflect.TypeFor[T]().Name()
	}

	if len(def.Order) == 0 {
		def.Order = []store.Order{{Column: "id"}}
	}

	return &Manager[T]{
		def:      def,
		store:    s,
		required: required,
		state:    Idle{},
	}, nil
}

// Table returns the name of the managed table.
func (m *Manager[T]) Table() string {
	return m.store.Name()
}

// Label returns the display name of the entity.
func (m *Manager[T]) Label() string {
	return m.def.Label
}

// Items returns a copy of the listed records.
func (m *Manager[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.items)
}

// Find returns the listed record with id.
func (m *Manager[T]) Find(id uint64) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.find(id)
}

func (m *Manager[T]) find(id uint64) (T, bool) {
	for _, it := range m.items {
		if it.PrimaryKey() == id {
			return it, true
		}
	}

	var zero T

	return zero, false
}

// State returns the current dialog state.
func (m *Manager[T]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Busy reports whether a store call is in flight.
func (m *Manager[T]) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.busy
}

// TakeNotices returns and clears the pending notices.
func (m *Manager[T]) TakeNotices() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.notices
	m.notices = nil

	return out
}

func (m *Manager[T]) notify(level Level, format string, args ...any) {
	m.notices = append(m.notices, Notice{Level: level, Text: fmt.Sprintf(format, args...)})
}

// List replaces the items with every row of the table.
// On failure the items are left untouched.
func (m *Manager[T]) List(ctx context.Context) error {
	rows, err := m.store.Select(ctx, store.Query{Order: m.def.Order})

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		return m.remoteFailure(OpList, 0, err)
	}

	m.items = rows

	observe(m.Table(), OpList, outcomeSuccess)

	return nil
}

// BeginCreate opens the create dialog with the retained draft, or a default one.
func (m *Manager[T]) BeginCreate() (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		var zero T
		return zero, ErrBusy
	}

	if c, ok := m.state.(Creating[T]); ok {
		return c.Draft, nil
	}

	draft := m.newDraft()
	m.state = Creating[T]{Draft: draft}

	return draft, nil
}

func (m *Manager[T]) newDraft() T {
	if m.def.NewDraft != nil {
		return m.def.NewDraft()
	}

	var zero T

	return zero
}

// BeginEdit opens the edit dialog with a copy of the listed record.
// Any other open dialog is closed.
func (m *Manager[T]) BeginEdit(id uint64) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		var zero T
		return zero, ErrBusy
	}

	rec, ok := m.find(id)
	if !ok {
		return rec, ErrUnknownRecord
	}

	m.state = Editing[T]{ID: id, Draft: rec}

	return rec, nil
}

// Cancel closes any open dialog. A retained create draft is discarded.
func (m *Manager[T]) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return ErrBusy
	}

	m.state = Idle{}

	return nil
}

// Create validates and inserts draft. On success the dialog closes and the
// items are reloaded; on failure the dialog stays open with the draft.
func (m *Manager[T]) Create(ctx context.Context, draft T) (T, error) {
	m.mu.Lock()

	if m.busy {
		m.mu.Unlock()
		return draft, ErrBusy
	}

	draft = m.prepare(draft)
	m.state = Creating[T]{Draft: draft}

	if err := m.validate(OpCreate, draft); err != nil {
		m.mu.Unlock()
		return draft, err
	}

	m.begin(OpCreate, 0)
	m.mu.Unlock()

	err := m.store.Insert(ctx, &draft)

	m.mu.Lock()
	m.busy = false

	if err != nil {
		m.state = Creating[T]{Draft: draft}
		err = m.remoteFailure(OpCreate, 0, err)
		m.mu.Unlock()

		return draft, err
	}

	m.state = Idle{}
	m.notify(LevelSuccess, "%s created", m.def.Label)
	observe(m.Table(), OpCreate, outcomeSuccess)

	if m.def.NoRelist {
		m.items = append(m.items, draft)
		m.mu.Unlock()

		return draft, nil
	}

	m.mu.Unlock()

	m.relist(ctx)

	return draft, nil
}

// Update validates draft and replaces the stored row id with it.
// id and creation time are never changed.
func (m *Manager[T]) Update(ctx context.Context, id uint64, draft T) (T, error) {
	m.mu.Lock()

	if m.busy {
		m.mu.Unlock()
		return draft, ErrBusy
	}

	draft = m.prepare(draft)
	m.state = Editing[T]{ID: id, Draft: draft}

	if err := m.validate(OpUpdate, draft); err != nil {
		m.mu.Unlock()
		return draft, err
	}

	m.begin(OpUpdate, id)
	m.mu.Unlock()

	_, err := m.store.Update(ctx, &draft, store.ByID(id))

	m.mu.Lock()
	m.busy = false

	if err != nil {
		m.state = Editing[T]{ID: id, Draft: draft}
		err = m.remoteFailure(OpUpdate, id, err)
		m.mu.Unlock()

		return draft, err
	}

	m.state = Idle{}
	m.notify(LevelSuccess, "%s updated", m.def.Label)
	observe(m.Table(), OpUpdate, outcomeSuccess)

	if m.def.NoRelist {
		if i := slices.IndexFunc(m.items, func(it T) bool { return it.PrimaryKey() == id }); i >= 0 {
			m.items[i] = draft
		}

		m.mu.Unlock()

		return draft, nil
	}

	m.mu.Unlock()

	m.relist(ctx)

	return draft, nil
}

// RequestDelete opens the delete confirmation for id. Nothing is deleted yet.
func (m *Manager[T]) RequestDelete(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return ErrBusy
	}

	m.state = ConfirmingDelete{ID: id}

	return nil
}

// ConfirmDelete removes the record awaiting confirmation.
// On success it is dropped from the items; on failure the items are unchanged.
func (m *Manager[T]) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()

	if m.busy {
		m.mu.Unlock()
		return ErrBusy
	}

	pending, ok := m.state.(ConfirmingDelete)
	if !ok {
		m.mu.Unlock()
		return ErrNothingToConfirm
	}

	m.begin(OpDelete, pending.ID)
	m.mu.Unlock()

	n, err := m.store.Delete(ctx, store.ByID(pending.ID))
	if err == nil && n == 0 {
		err = ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy = false

	if err != nil {
		m.state = pending

		return m.remoteFailure(OpDelete, pending.ID, err)
	}

	m.items = slices.DeleteFunc(m.items, func(it T) bool { return it.PrimaryKey() == pending.ID })
	m.state = Idle{}
	m.notify(LevelSuccess, "%s deleted", m.def.Label)
	observe(m.Table(), OpDelete, outcomeSuccess)

	return nil
}

// begin marks a store call in flight. m.mu must be held.
func (m *Manager[T]) begin(op Op, id uint64) {
	m.busy = true
	m.state = Submitting{Op: op, ID: id}
}

func (m *Manager[T]) prepare(draft T) T {
	normalize(reflect.ValueOf(&draft).Elem())

	if m.def.Prepare != nil {
		m.def.Prepare(&draft)
	}

	return draft
}

// validate returns a ValidationError for empty required fields. m.mu must be held.
func (m *Manager[T]) validate(op Op, draft T) error {
	fields := missing(reflect.ValueOf(draft), m.required)
	if len(fields) == 0 {
		return nil
	}

	m.notify(LevelError, "Please fill in: %s", strings.Join(fields, ", "))
	observe(m.Table(), op, outcomeInvalid)

	return &ValidationError{Fields: fields}
}

// remoteFailure records a failed store call. m.mu must be held.
func (m *Manager[T]) remoteFailure(op Op, id uint64, err error) error {
	rerr := &RemoteError{Op: op, Table: m.Table(), ID: id, Err: err}

	text := fmt.Sprintf("Failed to %s %s", op, strings.ToLower(m.def.Label))
	if errors.Is(err, ErrNotFound) {
		text += ": it no longer exists"
	}

	m.notify(LevelError, "%s", text)
	observe(m.Table(), op, outcomeError)

	log.Error().Err(err).
		Str("table", rerr.Table).
		Str("op", string(op)).
		Uint64("id", id).
		Msg("store call failed")

	return rerr
}

// relist reloads the items after a successful mutation. A failure only adds a notice.
func (m *Manager[T]) relist(ctx context.Context) {
	if err := m.List(ctx); err != nil {
		log.Warn().Err(err).Str("table", m.Table()).Msg("reload after mutation failed")
	}
}
