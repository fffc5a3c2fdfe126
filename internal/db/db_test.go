package db

import "testing"

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	for _, table := range []string{"settings", "items"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestItemsTableRejectsNegativeQty(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(`INSERT INTO items (name, qty) VALUES ('x', -1)`)
	if err == nil {
		t.Error("expected CHECK constraint to reject negative qty")
	}
}
