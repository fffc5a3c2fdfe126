// Package checkers manages the registry of reviewer names that can be
// recorded against an item. The registry lives in the on-device store only.
package checkers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/store"
)

// Key is the on-device key of the registry.
const Key = "inventory-checkers"

var (
	// ErrEmptyName is returned when adding a blank name.
	ErrEmptyName = errors.New("checker name is required")
	// ErrDuplicate is returned when a name is already registered, ignoring case.
	ErrDuplicate = errors.New("checker already registered")
	// ErrNotFound is returned when removing an unknown name.
	ErrNotFound = errors.New("checker not found")
)

// Registry is the ordered list of reviewer names.
type Registry struct {
	db  *sql.DB
	log zerolog.Logger

	mu    sync.Mutex
	names []string
}

// Load reads the registry once. A missing value seeds the default names; an
// unreadable one degrades to an empty registry.
func Load(ctx context.Context, db *sql.DB, log zerolog.Logger) *Registry {
	r := &Registry{db: db, log: log.With().Str("component", "checkers").Logger()}

	raw, ok, err := store.GetSetting(ctx, db, Key)
	switch {
	case err != nil:
		r.log.Error().Err(err).Msg("reading checkers")
		r.names = []string{}
	case !ok:
		r.names = slices.Clone(model.DefaultCheckers)
	default:
		if err := json.Unmarshal([]byte(raw), &r.names); err != nil || r.names == nil {
			r.log.Error().Err(err).Msg("parsing checkers")
			r.names = []string{}
		}
	}
	return r
}

// List returns the registered names in order.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.names)
}

// Add registers a trimmed name.
func (r *Registry) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.names {
		if strings.EqualFold(n, name) {
			return "", fmt.Errorf("%q: %w", name, ErrDuplicate)
		}
	}
	r.names = append(r.names, name)
	r.save(ctx)
	return name, nil
}

// Remove unregisters a name. Items that recorded the name keep it.
func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.Index(r.names, name)
	if i < 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	r.names = slices.Delete(r.names, i, i+1)
	r.save(ctx)
	return nil
}

func (r *Registry) save(ctx context.Context) {
	data, err := json.Marshal(r.names)
	if err != nil {
		r.log.Error().Err(err).Msg("encoding checkers")
		return
	}
	if err := store.SetSetting(ctx, r.db, Key, string(data)); err != nil {
		r.log.Error().Err(err).Msg("writing checkers")
	}
}
