package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/store"
)

// StateKey is the on-device key holding the serialized collection.
const StateKey = "inventory-state"

// DeviceBackend keeps the collection in the on-device key-value store. It
// mirrors the collection and rewrites the whole array under StateKey after
// every mutation. Faults are logged, never returned.
type DeviceBackend struct {
	db  *sql.DB
	log zerolog.Logger

	mu     sync.Mutex
	items  []model.Item
	loaded bool
}

// NewDeviceBackend creates a backend over the on-device settings table.
func NewDeviceBackend(db *sql.DB, log zerolog.Logger) *DeviceBackend {
	return &DeviceBackend{
		db:  db,
		log: log.With().Str("backend", "device").Logger(),
	}
}

// Mode implements Backend.
func (b *DeviceBackend) Mode() Mode { return ModeDevice }

// List implements Backend. A missing or unreadable state falls back to the
// seed dataset.
func (b *DeviceBackend) List(ctx context.Context) ([]model.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = b.read(ctx)
	b.loaded = true
	return cloneItems(b.items), nil
}

// Insert implements Backend. Items without an id get max+1.
func (b *DeviceBackend) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLoaded(ctx)

	if item.ID == 0 {
		for _, existing := range b.items {
			item.ID = max(item.ID, existing.ID)
		}
		item.ID++
	}
	item = item.Clone()
	b.items = append(b.items, item)
	b.write(ctx)
	return item.Clone(), nil
}

// Update implements Backend.
func (b *DeviceBackend) Update(ctx context.Context, id int64, patch model.Patch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLoaded(ctx)

	for i := range b.items {
		if b.items[i].ID == id {
			patch.Apply(&b.items[i])
			b.write(ctx)
			return nil
		}
	}
	b.log.Debug().Int64("item_id", id).Msg("update for unknown item ignored")
	return nil
}

// Delete implements Backend.
func (b *DeviceBackend) Delete(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureLoaded(ctx)

	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			b.write(ctx)
			return nil
		}
	}
	return nil
}

func (b *DeviceBackend) ensureLoaded(ctx context.Context) {
	if !b.loaded {
		b.items = b.read(ctx)
		b.loaded = true
	}
}

func (b *DeviceBackend) read(ctx context.Context) []model.Item {
	raw, ok, err := store.GetSetting(ctx, b.db, StateKey)
	if err != nil {
		b.log.Error().Err(err).Msg("reading stored inventory, using seed")
		return model.Seed()
	}
	if !ok {
		b.log.Info().Msg("no stored inventory, using seed")
		return model.Seed()
	}

	items, err := DecodeState([]byte(raw))
	if err != nil {
		b.log.Error().Err(err).Msg("parsing stored inventory, using seed")
		return model.Seed()
	}
	return items
}

func (b *DeviceBackend) write(ctx context.Context) {
	data, err := EncodeState(b.items)
	if err != nil {
		b.log.Error().Err(err).Msg("encoding inventory")
		return
	}
	if err := store.SetSetting(ctx, b.db, StateKey, string(data)); err != nil {
		b.log.Error().Err(err).Msg("writing inventory")
	}
}

// EncodeState serializes a collection to the on-device JSON format.
func EncodeState(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	return json.Marshal(items)
}

// DecodeState parses the on-device JSON format through the untrusted-row
// path. Elements without a usable id are dropped.
func DecodeState(data []byte) ([]model.Item, error) {
	rows, err := model.DecodeRows(data)
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		item, err := model.ItemFromRow(r)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
