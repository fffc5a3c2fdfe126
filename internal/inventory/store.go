// Package inventory holds the in-session item collection and the mutations
// allowed on it. Every mutation is applied locally first; its persistence
// side effect is queued on a Dispatcher and never rolls the change back.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/persist"
)

// ErrNotFound is returned by mutations targeting an id not in the collection.
var ErrNotFound = errors.New("item not found")

// Options configure a Store.
type Options struct {
	Threshold  int
	AutoStatus bool
	// Now overrides the clock used for lastUpdated.
	Now func() time.Time
}

// Store is the authoritative in-session collection.
type Store struct {
	backend  persist.Backend
	dispatch *Dispatcher
	log      zerolog.Logger
	now      func() time.Time

	mu        sync.Mutex
	items     []model.Item
	threshold int
	auto      bool
	lastID    int64
}

// New creates a store over the hydrated items. When automatic status is on,
// every status is recomputed once and the changes persisted.
func New(ctx context.Context, backend persist.Backend, items []model.Item, dispatch *Dispatcher, opts Options, log zerolog.Logger) *Store {
	s := &Store{
		backend:   backend,
		dispatch:  dispatch,
		log:       log.With().Str("component", "inventory").Logger(),
		now:       opts.Now,
		threshold: model.ClampThreshold(opts.Threshold),
		auto:      opts.AutoStatus,
		items:     make([]model.Item, 0, len(items)),
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, item := range items {
		s.items = append(s.items, item.Clone())
		s.lastID = max(s.lastID, item.ID)
	}

	if n := s.RecomputeAllStatuses(ctx, s.threshold); n > 0 {
		s.log.Info().Int("changed", n).Msg("statuses recomputed after load")
	}
	return s
}

// Mode reports the persistence mode of the session.
func (s *Store) Mode() persist.Mode {
	return s.backend.Mode()
}

// Threshold returns the low-stock threshold.
func (s *Store) Threshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold
}

// AutoStatus reports whether statuses follow quantities automatically.
func (s *Store) AutoStatus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auto
}

// Items returns a copy of the collection in collection order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id int64) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return s.items[i].Clone(), nil
}

// Add validates the draft and appends a new item. On the on-device path the
// id is assigned locally and the insert is queued. A remote backend assigns
// the id itself, so the insert is awaited and a failure leaves the
// collection unchanged.
func (s *Store) Add(ctx context.Context, draft model.Draft) (model.Item, error) {
	item, err := draft.Validate()
	if err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	item.Status = model.StatusNormal
	if s.auto {
		item.Status = model.ComputeStatus(item.Qty, s.threshold)
	}
	ts := s.now().UTC()
	item.LastUpdated = &ts

	if s.backend.Mode() == persist.ModeRemote {
		s.mu.Unlock()
		return s.addRemote(ctx, item)
	}
	defer s.mu.Unlock()

	item.ID = s.nextID()
	s.items = append(s.items, item.Clone())

	pending := item.Clone()
	s.submit(ctx, "insert", item.ID, func(ctx context.Context) error {
		_, err := s.backend.Insert(ctx, pending)
		return err
	})
	s.log.Info().Int64("item_id", item.ID).Str("name", item.Name).Msg("item added")
	return item, nil
}

func (s *Store) addRemote(ctx context.Context, item model.Item) (model.Item, error) {
	created, err := s.backend.Insert(ctx, item)
	if err != nil {
		return model.Item{}, &persist.PersistenceError{Op: "insert", Err: err}
	}
	if created.ID == 0 {
		return model.Item{}, &persist.PersistenceError{Op: "insert", Err: errors.New("backend returned no id")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Threshold or auto status may have changed while the insert was in flight.
	if s.auto {
		if status := model.ComputeStatus(created.Qty, s.threshold); status != created.Status {
			created.Status = status
			s.submitUpdate(ctx, created.ID, model.Patch{Status: &status})
		}
	}
	s.items = append(s.items, created.Clone())
	s.lastID = max(s.lastID, created.ID)
	s.log.Info().Int64("item_id", created.ID).Str("name", created.Name).Msg("item added")
	return created, nil
}

// Remove deletes the item locally and queues the delete. Callers confirm
// with the user before calling it.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)

	s.submit(ctx, "delete", id, func(ctx context.Context) error {
		return s.backend.Delete(ctx, id)
	})
	s.log.Info().Int64("item_id", id).Msg("item removed")
	return nil
}

// AdjustQuantity adds delta to the quantity, flooring at zero.
func (s *Store) AdjustQuantity(ctx context.Context, id int64, delta int) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return s.setQty(ctx, i, int64(s.items[i].Qty)+int64(delta)), nil
}

// SetQuantity parses raw as a number and sets it as the quantity. Invalid
// or negative values become zero.
func (s *Store) SetQuantity(ctx context.Context, id int64, raw any) (model.Item, error) {
	qty := int64(model.CoerceQty(raw))

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return s.setQty(ctx, i, qty), nil
}

func (s *Store) setQty(ctx context.Context, i int, qty int64) model.Item {
	qty = min(max(qty, 0), model.MaxQty)

	item := &s.items[i]
	item.Qty = int(qty)
	if s.auto {
		item.Status = model.ComputeStatus(item.Qty, s.threshold)
	}
	ts := s.now().UTC()
	item.LastUpdated = &ts

	newQty, status := item.Qty, item.Status
	s.submitUpdate(ctx, item.ID, model.Patch{Qty: &newQty, Status: &status, LastUpdated: &ts})
	return item.Clone()
}

// SetCheckedBy replaces the item's reviewer set. Duplicate and blank names
// are dropped; order is kept.
func (s *Store) SetCheckedBy(ctx context.Context, id int64, names []string) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	set := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" && !slices.Contains(set, n) {
			set = append(set, n)
		}
	}

	item := &s.items[i]
	item.CheckedBy = set
	ts := s.now().UTC()
	item.LastUpdated = &ts

	checked := slices.Clone(set)
	s.submitUpdate(ctx, id, model.Patch{CheckedBy: &checked, LastUpdated: &ts})
	return item.Clone(), nil
}

// RecomputeAllStatuses makes the clamped threshold current and recomputes
// every status from its quantity when automatic status is on. Only changed
// items are written, one status patch each, so a second call with the same
// threshold writes nothing. It returns the number of items changed.
func (s *Store) RecomputeAllStatuses(ctx context.Context, threshold int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threshold = model.ClampThreshold(threshold)
	return s.recompute(ctx, s.threshold)
}

func (s *Store) recompute(ctx context.Context, threshold int) int {
	if !s.auto {
		return 0
	}
	changed := 0
	for i := range s.items {
		item := &s.items[i]
		status := model.ComputeStatus(item.Qty, threshold)
		if status == item.Status {
			continue
		}
		item.Status = status
		changed++
		s.submitUpdate(ctx, item.ID, model.Patch{Status: &status})
	}
	return changed
}

// SetThreshold stores the clamped threshold and recomputes statuses.
func (s *Store) SetThreshold(ctx context.Context, threshold int) int {
	return s.RecomputeAllStatuses(ctx, threshold)
}

// SetAutoStatus switches automatic status. Turning it on recomputes.
func (s *Store) SetAutoStatus(ctx context.Context, on bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auto = on
	return s.recompute(ctx, s.threshold)
}

func (s *Store) submitUpdate(ctx context.Context, id int64, patch model.Patch) {
	s.submit(ctx, "update", id, func(ctx context.Context) error {
		return s.backend.Update(ctx, id, patch)
	})
}

func (s *Store) submit(ctx context.Context, op string, id int64, run func(context.Context) error) {
	s.dispatch.Submit(ctx, Task{Op: op, ItemID: id, Run: run})
}

// nextID returns one more than the largest id seen this session, so ids of
// removed items are not reused.
func (s *Store) nextID() int64 {
	for _, item := range s.items {
		s.lastID = max(s.lastID, item.ID)
	}
	s.lastID++
	return s.lastID
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.items, func(item model.Item) bool { return item.ID == id })
}
