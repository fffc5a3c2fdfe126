package db

import (
	"database/sql"
	"fmt"
)

// schema holds the on-device key-value settings and the items table used
// when the collection itself lives in a SQLite file.
const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id           INTEGER PRIMARY KEY,
    category     TEXT NOT NULL DEFAULT '',
    name         TEXT NOT NULL DEFAULT '',
    qty          INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
    unit         TEXT NOT NULL DEFAULT 'ชิ้น',
    status       TEXT NOT NULL DEFAULT 'ปกติ' CHECK (status IN ('ปกติ', 'ใกล้หมด', 'หมด')),
    location     TEXT NOT NULL DEFAULT '',
    checked_by   TEXT NOT NULL DEFAULT '[]',
    last_updated TEXT
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
