// Package persisttest provides an in-memory Backend for tests.
package persisttest

import (
	"context"
	"errors"
	"sync"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/persist"
)

// ErrInjected is returned by a Memory backend set to fail.
var ErrInjected = errors.New("injected backend failure")

// Call records one write made against a Memory backend.
type Call struct {
	Op    string
	ID    int64
	Patch model.Patch
	Item  model.Item
}

// Memory is a Backend holding rows in a map. It records every write and can
// be told to fail reads or writes.
type Memory struct {
	mode persist.Mode

	mu        sync.Mutex
	rows      []model.Item
	nextID    int64
	calls     []Call
	failList  bool
	failWrite bool
}

// NewMemory creates a backend in the given mode holding items.
func NewMemory(mode persist.Mode, items ...model.Item) *Memory {
	m := &Memory{mode: mode, nextID: 1}
	for _, item := range items {
		m.rows = append(m.rows, item.Clone())
		m.nextID = max(m.nextID, item.ID+1)
	}
	return m
}

// FailList makes List return ErrInjected.
func (m *Memory) FailList(fail bool) {
	m.mu.Lock()
	m.failList = fail
	m.mu.Unlock()
}

// FailWrites makes Insert, Update and Delete return ErrInjected.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	m.failWrite = fail
	m.mu.Unlock()
}

// Calls returns the writes made so far.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Writes returns the number of writes made so far.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Items returns a copy of the stored rows.
func (m *Memory) Items() []model.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Item, len(m.rows))
	for i, item := range m.rows {
		out[i] = item.Clone()
	}
	return out
}

// Mode implements persist.Backend.
func (m *Memory) Mode() persist.Mode { return m.mode }

// List implements persist.Backend.
func (m *Memory) List(ctx context.Context) ([]model.Item, error) {
	m.mu.Lock()
	fail := m.failList
	m.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return m.Items(), nil
}

// Insert implements persist.Backend. In remote mode the id is assigned here.
func (m *Memory) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "insert", Item: item.Clone()})
	if m.failWrite {
		return model.Item{}, ErrInjected
	}
	if m.mode == persist.ModeRemote || item.ID == 0 {
		item.ID = m.nextID
	}
	m.nextID = max(m.nextID, item.ID+1)
	m.rows = append(m.rows, item.Clone())
	return item.Clone(), nil
}

// Update implements persist.Backend.
func (m *Memory) Update(ctx context.Context, id int64, patch model.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "update", ID: id, Patch: patch})
	if m.failWrite {
		return ErrInjected
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			patch.Apply(&m.rows[i])
		}
	}
	return nil
}

// Delete implements persist.Backend.
func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: "delete", ID: id})
	if m.failWrite {
		return ErrInjected
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}
