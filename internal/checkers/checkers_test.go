package checkers

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/db"
	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/store"
)

func TestLoadSeedsDefaults(t *testing.T) {
	r := Load(context.Background(), db.NewTestDB(t), zerolog.Nop())
	if !slices.Equal(r.List(), model.DefaultCheckers) {
		t.Errorf("expected default checkers, got %v", r.List())
	}
}

func TestLoadCorruptValue(t *testing.T) {
	database := db.NewTestDB(t)
	store.SetSetting(context.Background(), database, Key, "[oops")

	r := Load(context.Background(), database, zerolog.Nop())
	if len(r.List()) != 0 {
		t.Errorf("expected empty registry, got %v", r.List())
	}
}

func TestAddAndRemove(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	store.SetSetting(ctx, database, Key, `["Nice","Fah"]`)

	r := Load(ctx, database, zerolog.Nop())
	if name, err := r.Add(ctx, "  Mint "); err != nil || name != "Mint" {
		t.Fatalf("Add: %q, %v", name, err)
	}
	if err := r.Remove(ctx, "Nice"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	reloaded := Load(ctx, database, zerolog.Nop())
	if want := []string{"Fah", "Mint"}; !slices.Equal(reloaded.List(), want) {
		t.Errorf("expected %v after reload, got %v", want, reloaded.List())
	}
}

func TestAddErrors(t *testing.T) {
	r := Load(context.Background(), db.NewTestDB(t), zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name string
		want error
	}{
		{"", ErrEmptyName},
		{"   ", ErrEmptyName},
		{"nice", ErrDuplicate},
		{"FAH", ErrDuplicate},
	}
	for _, tt := range tests {
		if _, err := r.Add(ctx, tt.name); !errors.Is(err, tt.want) {
			t.Errorf("Add(%q): expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if len(r.List()) != len(model.DefaultCheckers) {
		t.Errorf("registry changed: %v", r.List())
	}
}

func TestRemoveUnknown(t *testing.T) {
	r := Load(context.Background(), db.NewTestDB(t), zerolog.Nop())
	if err := r.Remove(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
