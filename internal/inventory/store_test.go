package inventory

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/persist"
	"github.com/biomintech/labstock/internal/persist/persisttest"
)

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type testStore struct {
	*Store
	backend  *persisttest.Memory
	dispatch *Dispatcher
	failures []error
}

func newTestStore(t *testing.T, mode persist.Mode, items ...model.Item) *testStore {
	t.Helper()
	ts := &testStore{backend: persisttest.NewMemory(mode, items...)}
	ts.dispatch = NewDispatcher(1, zerolog.Nop(), func(_ Task, err error) {
		ts.failures = append(ts.failures, err)
	})
	t.Cleanup(ts.dispatch.Close)

	ts.Store = New(context.Background(), ts.backend, items, ts.dispatch, Options{
		Threshold:  3,
		AutoStatus: true,
		Now:        func() time.Time { return fixedNow },
	}, zerolog.Nop())
	ts.dispatch.Wait()
	return ts
}

func newItem(id int64, qty int, status model.Status) model.Item {
	return model.Item{ID: id, Category: "C", Name: "N", Qty: qty, Unit: "u", Status: status, Location: "L", CheckedBy: []string{}}
}

func TestAddToEmptyCollection(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice)

	got, err := s.Add(context.Background(), model.Draft{Category: "C", Name: "N", Qty: 2, Unit: "u", Location: "L"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.ID != 1 || got.Qty != 2 || got.Status != model.StatusLow {
		t.Errorf("unexpected item %+v", got)
	}
	if got.LastUpdated == nil || !got.LastUpdated.Equal(fixedNow) {
		t.Errorf("expected lastUpdated %v, got %v", fixedNow, got.LastUpdated)
	}

	s.dispatch.Wait()
	calls := s.backend.Calls()
	if len(calls) != 1 || calls[0].Op != "insert" || calls[0].Item.ID != 1 {
		t.Errorf("expected one insert of id 1, got %+v", calls)
	}
}

func TestAddValidationError(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal))

	_, err := s.Add(context.Background(), model.Draft{Category: "C", Name: "", Qty: 2, Unit: "u", Location: "L"})
	var verr *model.ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	if n := len(s.Items()); n != 1 {
		t.Errorf("collection changed: %d items", n)
	}
	s.dispatch.Wait()
	if s.backend.Writes() != 0 {
		t.Errorf("expected no writes, got %d", s.backend.Writes())
	}
}

func TestAddAssignsMaxPlusOne(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal), newItem(3, 5, model.StatusNormal))

	got, err := s.Add(context.Background(), model.Draft{Category: "C", Name: "N", Qty: 9, Unit: "u", Location: "L"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 4 {
		t.Errorf("expected id 4, got %d", got.ID)
	}
}

func TestAddDoesNotReuseRemovedID(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal), newItem(2, 5, model.StatusNormal))
	ctx := context.Background()

	s.Remove(ctx, 2)
	got, _ := s.Add(ctx, model.Draft{Category: "C", Name: "N", Qty: 1, Unit: "u", Location: "L"})
	if got.ID != 3 {
		t.Errorf("expected id 3, got %d", got.ID)
	}
}

func TestAddWithAutoStatusOff(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice)
	s.SetAutoStatus(context.Background(), false)

	got, _ := s.Add(context.Background(), model.Draft{Category: "C", Name: "N", Qty: 0, Unit: "u", Location: "L"})
	if got.Status != model.StatusNormal {
		t.Errorf("expected NORMAL with automatic status off, got %s", got.Status.Name())
	}
}

func TestAddRemote(t *testing.T) {
	s := newTestStore(t, persist.ModeRemote, newItem(7, 5, model.StatusNormal))

	got, err := s.Add(context.Background(), model.Draft{Category: "C", Name: "N", Qty: "12", Unit: "u", Location: "L"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 8 || got.Qty != 12 {
		t.Errorf("unexpected item %+v", got)
	}
	if _, err := s.Get(8); err != nil {
		t.Errorf("added item missing: %v", err)
	}
}

// gatedBackend holds inserts until release is closed.
type gatedBackend struct {
	*persisttest.Memory
	entered chan struct{}
	release chan struct{}
}

func (g *gatedBackend) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	close(g.entered)
	<-g.release
	return g.Memory.Insert(ctx, item)
}

func TestAddRemoteUsesThresholdAfterInsert(t *testing.T) {
	backend := &gatedBackend{
		Memory:  persisttest.NewMemory(persist.ModeRemote),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	dispatch := NewDispatcher(1, zerolog.Nop(), nil)
	t.Cleanup(dispatch.Close)
	s := New(context.Background(), backend, nil, dispatch, Options{
		Threshold:  3,
		AutoStatus: true,
		Now:        func() time.Time { return fixedNow },
	}, zerolog.Nop())
	ctx := context.Background()

	type result struct {
		item model.Item
		err  error
	}
	done := make(chan result, 1)
	go func() {
		item, err := s.Add(ctx, model.Draft{Category: "C", Name: "N", Qty: 5, Unit: "u", Location: "L"})
		done <- result{item, err}
	}()

	<-backend.entered
	s.SetThreshold(ctx, 10)
	close(backend.release)

	res := <-done
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.item.Status != model.StatusLow {
		t.Errorf("expected LOW at threshold 10, got %s", res.item.Status)
	}
	got, err := s.Get(res.item.ID)
	if err != nil || got.Status != model.StatusLow {
		t.Errorf("expected stored LOW, got %+v (%v)", got, err)
	}

	dispatch.Wait()
	rows := backend.Items()
	if len(rows) != 1 || rows[0].Status != model.StatusLow {
		t.Errorf("expected backend row updated to LOW, got %+v", rows)
	}
}

func TestAddRemoteFailureLeavesCollection(t *testing.T) {
	s := newTestStore(t, persist.ModeRemote, newItem(1, 5, model.StatusNormal))
	s.backend.FailWrites(true)

	_, err := s.Add(context.Background(), model.Draft{Category: "C", Name: "N", Qty: 1, Unit: "u", Location: "L"})
	var perr *persist.PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, persisttest.ErrInjected) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if n := len(s.Items()); n != 1 {
		t.Errorf("collection changed: %d items", n)
	}
}

func TestAdjustQuantityFloorsAtZero(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal))

	got, err := s.AdjustQuantity(context.Background(), 1, -10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Qty != 0 || got.Status != model.StatusEmpty {
		t.Errorf("expected qty 0 EMPTY, got %d %s", got.Qty, got.Status.Name())
	}

	s.dispatch.Wait()
	calls := s.backend.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one update, got %+v", calls)
	}
	p := calls[0].Patch
	if p.Qty == nil || *p.Qty != 0 || p.Status == nil || *p.Status != model.StatusEmpty || p.LastUpdated == nil || p.CheckedBy != nil {
		t.Errorf("unexpected patch %+v", p)
	}
}

func TestAdjustQuantityNeverNegative(t *testing.T) {
	for start := 0; start <= 6; start++ {
		for delta := -8; delta <= 0; delta++ {
			s := newTestStore(t, persist.ModeDevice, newItem(1, start, model.ComputeStatus(start, 3)))
			got, _ := s.AdjustQuantity(context.Background(), 1, delta)
			if want := max(0, start+delta); got.Qty != want {
				t.Errorf("start %d delta %d: got %d, want %d", start, delta, got.Qty, want)
			}
		}
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		raw    any
		qty    int
		status model.Status
	}{
		{"7", 7, model.StatusNormal},
		{3, 3, model.StatusLow},
		{"abc", 0, model.StatusEmpty},
		{-4, 0, model.StatusEmpty},
		{2.9, 2, model.StatusLow},
		{nil, 0, model.StatusEmpty},
	}
	for _, tt := range tests {
		s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal))
		got, err := s.SetQuantity(context.Background(), 1, tt.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got.Qty != tt.qty || got.Status != tt.status {
			t.Errorf("SetQuantity(%v) = %d %s, want %d %s", tt.raw, got.Qty, got.Status.Name(), tt.qty, tt.status.Name())
		}
	}
}

func TestSetCheckedByReplaces(t *testing.T) {
	start := newItem(1, 5, model.StatusNormal)
	start.CheckedBy = []string{"Nice"}
	s := newTestStore(t, persist.ModeDevice, start)

	got, err := s.SetCheckedBy(context.Background(), 1, []string{"Fah", " Air ", "Fah", ""})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.CheckedBy, []string{"Fah", "Air"}) {
		t.Errorf("expected [Fah Air], got %v", got.CheckedBy)
	}

	s.dispatch.Wait()
	p := s.backend.Calls()[0].Patch
	if p.CheckedBy == nil || !slices.Equal(*p.CheckedBy, []string{"Fah", "Air"}) || p.LastUpdated == nil || p.Qty != nil || p.Status != nil {
		t.Errorf("unexpected patch %+v", p)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal), newItem(2, 5, model.StatusNormal))

	if err := s.Remove(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	items := s.Items()
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("unexpected items %+v", items)
	}
	s.dispatch.Wait()
	if calls := s.backend.Calls(); len(calls) != 1 || calls[0].Op != "delete" || calls[0].ID != 1 {
		t.Errorf("expected delete of 1, got %+v", calls)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 5, model.StatusNormal))
	ctx := context.Background()

	checks := map[string]error{
		"remove":    s.Remove(ctx, 9),
		"get":       second(s.Get(9)),
		"adjust":    second(s.AdjustQuantity(ctx, 9, 1)),
		"set qty":   second(s.SetQuantity(ctx, 9, 1)),
		"checkedBy": second(s.SetCheckedBy(ctx, 9, []string{"Nice"})),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}

	s.dispatch.Wait()
	if s.backend.Writes() != 0 {
		t.Errorf("expected no writes, got %d", s.backend.Writes())
	}
}

func second[T any](_ T, err error) error { return err }

func TestPersistenceFailureKeepsLocalChange(t *testing.T) {
	s := newTestStore(t, persist.ModeRemote, newItem(1, 5, model.StatusNormal))
	s.backend.FailWrites(true)

	if _, err := s.AdjustQuantity(context.Background(), 1, -1); err != nil {
		t.Fatalf("local mutation failed: %v", err)
	}
	s.dispatch.Wait()

	got, _ := s.Get(1)
	if got.Qty != 4 {
		t.Errorf("local change rolled back: qty %d", got.Qty)
	}
	if len(s.failures) != 1 {
		t.Fatalf("expected one reported failure, got %d", len(s.failures))
	}
	var perr *persist.PersistenceError
	if !errors.As(s.failures[0], &perr) || perr.Op != "update" || perr.ItemID != 1 {
		t.Errorf("unexpected failure %v", s.failures[0])
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice,
		newItem(1, 0, model.StatusNormal),
		newItem(2, 2, model.StatusNormal),
		newItem(3, 4, model.StatusNormal),
	)
	ctx := context.Background()
	base := s.backend.Writes()

	if n := s.RecomputeAllStatuses(ctx, 5); n != 1 {
		t.Errorf("expected one change at threshold 5, got %d", n)
	}
	s.dispatch.Wait()
	afterFirst := s.backend.Writes()
	if afterFirst != base+1 {
		t.Errorf("expected one write, got %d", afterFirst-base)
	}

	if n := s.RecomputeAllStatuses(ctx, 5); n != 0 {
		t.Errorf("second run changed %d items", n)
	}
	s.dispatch.Wait()
	if s.backend.Writes() != afterFirst {
		t.Errorf("second run wrote %d times", s.backend.Writes()-afterFirst)
	}

	last := s.backend.Calls()[afterFirst-1].Patch
	if last.Status == nil || *last.Status != model.StatusLow || last.Qty != nil || last.LastUpdated != nil {
		t.Errorf("expected status-only patch, got %+v", last)
	}
}

func TestNewRecomputesLoadedStatuses(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 0, model.StatusNormal), newItem(2, 5, model.StatusNormal))

	got, _ := s.Get(1)
	if got.Status != model.StatusEmpty {
		t.Errorf("expected EMPTY after load, got %s", got.Status.Name())
	}
	if s.backend.Writes() != 1 {
		t.Errorf("expected one write for the changed item, got %d", s.backend.Writes())
	}
}

func TestRecomputeKeepsThresholdForLaterEdits(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 8, model.StatusNormal))
	ctx := context.Background()

	s.RecomputeAllStatuses(ctx, 5)
	if s.Threshold() != 5 {
		t.Fatalf("expected threshold 5, got %d", s.Threshold())
	}

	got, err := s.AdjustQuantity(ctx, 1, -4)
	if err != nil {
		t.Fatal(err)
	}
	if got.Qty != 4 || got.Status != model.StatusLow {
		t.Errorf("expected qty 4 LOW at threshold 5, got %+v", got)
	}
}

func TestSetThresholdClampsAndRecomputes(t *testing.T) {
	s := newTestStore(t, persist.ModeDevice, newItem(1, 1, model.StatusLow))

	if n := s.SetThreshold(context.Background(), 0); n != 0 {
		t.Errorf("qty 1 stays LOW at threshold 1, got %d changes", n)
	}
	if s.Threshold() != 1 {
		t.Errorf("expected clamped threshold 1, got %d", s.Threshold())
	}
	s.SetAutoStatus(context.Background(), false)
	if n := s.SetThreshold(context.Background(), 10); n != 0 {
		t.Errorf("expected no recompute with automatic status off, got %d", n)
	}
}
