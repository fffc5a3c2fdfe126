package persist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/store"
)

// SQLBackend reaches the items table directly over database/sql.
type SQLBackend struct {
	db      *sql.DB
	dialect store.Dialect
	table   string
	owned   bool
	log     zerolog.Logger
}

// NewSQLBackend wraps an open database. The caller keeps ownership of db.
func NewSQLBackend(db *sql.DB, dialect store.Dialect, table string, log zerolog.Logger) (*SQLBackend, error) {
	if !store.ValidTable(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLBackend{
		db:      db,
		dialect: dialect,
		table:   table,
		log:     log.With().Str("backend", dialect.Name).Logger(),
	}, nil
}

// Mode implements Backend.
func (b *SQLBackend) Mode() Mode { return ModeRemote }

// List implements Backend. Rows that cannot be decoded are skipped.
func (b *SQLBackend) List(ctx context.Context) ([]model.Item, error) {
	rows, err := store.ListItems(ctx, b.db, b.dialect, b.table)
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		item, err := model.ItemFromRow(r)
		if err != nil {
			b.log.Warn().Err(err).Msg("skipping undecodable row")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Insert implements Backend. The database assigns the id.
func (b *SQLBackend) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	item.ID = 0
	row, err := store.InsertItem(ctx, b.db, b.dialect, b.table, item)
	if err != nil {
		return model.Item{}, err
	}
	return model.ItemFromRow(row)
}

// Update implements Backend.
func (b *SQLBackend) Update(ctx context.Context, id int64, patch model.Patch) error {
	return store.UpdateItem(ctx, b.db, b.dialect, b.table, id, patch)
}

// Delete implements Backend.
func (b *SQLBackend) Delete(ctx context.Context, id int64) error {
	return store.DeleteItem(ctx, b.db, b.dialect, b.table, id)
}

// Close closes the database when the backend opened it itself.
func (b *SQLBackend) Close() error {
	if !b.owned {
		return nil
	}
	return b.db.Close()
}
