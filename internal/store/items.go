package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/biomintech/labstock/internal/model"
)

const itemColumns = `id, category, name, qty, unit, status, location, checked_by, last_updated`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRow reads one items row into an untrusted model.Row so it goes through
// the same decoding as rows from any other backend.
func scanRow(d Dialect, s scanner) (model.Row, error) {
	var (
		id                                     int64
		category, name, unit, status, location sql.NullString
		qty                                    sql.NullFloat64
		lastUpdated                            sql.NullString
	)
	checked := d.listDest()
	if err := s.Scan(&id, &category, &name, &qty, &unit, &status, &location, checked.dest(), &lastUpdated); err != nil {
		return nil, err
	}

	row := model.Row{"id": id, "checked_by": checked.value()}
	for key, v := range map[string]sql.NullString{
		"category":     category,
		"name":         name,
		"unit":         unit,
		"status":       status,
		"location":     location,
		"last_updated": lastUpdated,
	} {
		if v.Valid {
			row[key] = v.String
		}
	}
	if qty.Valid {
		row["qty"] = qty.Float64
	}
	return row, nil
}

// ListItems returns every row of table ordered by id ascending.
func ListItems(ctx context.Context, db *sql.DB, d Dialect, table string) ([]model.Row, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM `+table+` ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		row, err := scanRow(d, rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertItem inserts item and returns the stored row. A zero id lets the
// database assign one.
func InsertItem(ctx context.Context, db *sql.DB, d Dialect, table string, item model.Item) (model.Row, error) {
	checked, err := d.listArg(item.CheckedBy)
	if err != nil {
		return nil, err
	}

	cols := []string{"category", "name", "qty", "unit", "status", "location", "checked_by", "last_updated"}
	args := []any{item.Category, item.Name, item.Qty, item.Unit, string(item.Status), item.Location, checked, formatTime(item.LastUpdated)}
	if item.ID != 0 {
		cols = append([]string{"id"}, cols...)
		args = append([]any{item.ID}, args...)
	}

	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = d.bind(i + 1)
	}

	row, err := scanRow(d, db.QueryRowContext(ctx,
		`INSERT INTO `+table+` (`+strings.Join(cols, ", ")+`) VALUES (`+strings.Join(marks, ", ")+`)
		 RETURNING `+itemColumns,
		args...,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	return row, nil
}

// UpdateItem writes the columns set in patch for the row with the given id.
func UpdateItem(ctx context.Context, db *sql.DB, d Dialect, table string, id int64, patch model.Patch) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = "+d.bind(len(args)))
	}

	if patch.Qty != nil {
		add("qty", *patch.Qty)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.CheckedBy != nil {
		checked, err := d.listArg(*patch.CheckedBy)
		if err != nil {
			return err
		}
		add("checked_by", checked)
	}
	if patch.LastUpdated != nil {
		add("last_updated", formatTime(patch.LastUpdated))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := db.ExecContext(ctx,
		`UPDATE `+table+` SET `+strings.Join(sets, ", ")+` WHERE id = `+d.bind(len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes the row with the given id.
func DeleteItem(ctx context.Context, db *sql.DB, d Dialect, table string, id int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE id = `+d.bind(1), id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
