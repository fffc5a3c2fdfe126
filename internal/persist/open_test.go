package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/db"
	"github.com/biomintech/labstock/internal/model"
)

func TestRemoteConfigEnabled(t *testing.T) {
	tests := []struct {
		cfg  RemoteConfig
		want bool
	}{
		{RemoteConfig{}, false},
		{RemoteConfig{URL: "https://x.supabase.co"}, false},
		{RemoteConfig{Key: "k"}, false},
		{RemoteConfig{URL: "  ", Key: "k"}, false},
		{RemoteConfig{URL: "https://x.supabase.co", Key: "k"}, true},
	}
	for _, tt := range tests {
		if got := tt.cfg.Enabled(); got != tt.want {
			t.Errorf("%+v.Enabled() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestSelectWithoutRemoteUsesDevice(t *testing.T) {
	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())
	b := Select(context.Background(), RemoteConfig{URL: "https://x.supabase.co"}, device, zerolog.Nop())
	if b != Backend(device) {
		t.Errorf("expected device backend, got %T", b)
	}
}

func TestSelectRESTBackend(t *testing.T) {
	_, server := newTableServer(t)
	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())

	b := Select(context.Background(), RemoteConfig{URL: server.URL, Key: testKey, Timeout: time.Second}, device, zerolog.Nop())
	if _, ok := b.(*RESTBackend); !ok {
		t.Fatalf("expected REST backend, got %T", b)
	}
	if b.Mode() != ModeRemote {
		t.Errorf("expected remote mode, got %s", b.Mode())
	}
}

func TestSelectFallsBackOnBadConfig(t *testing.T) {
	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())

	configs := []RemoteConfig{
		{URL: "ftp://example.com", Key: "k"},
		{URL: "https://x.supabase.co", Key: "k", Table: "items; drop"},
	}
	for _, cfg := range configs {
		if b := Select(context.Background(), cfg, device, zerolog.Nop()); b != Backend(device) {
			t.Errorf("config %+v: expected device fallback, got %T", cfg, b)
		}
	}
}

func TestSelectLeavesKeyJudgementToRemote(t *testing.T) {
	_, server := newTableServer(t)
	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())
	exp := time.Now().Add(-time.Hour)

	keys := map[string]string{
		"expired":      signKey(t, "anon", &exp),
		"service_role": signKey(t, "service_role", nil),
	}
	for name, key := range keys {
		b := Select(context.Background(), RemoteConfig{URL: server.URL, Key: key, Timeout: time.Second}, device, zerolog.Nop())
		if _, ok := b.(*RESTBackend); !ok {
			t.Errorf("%s key: expected REST backend, got %T", name, b)
		}
	}
}

func TestOpenSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.sqlite3")
	b, err := Open(context.Background(), RemoteConfig{URL: "sqlite://" + path, Key: "unused"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sb := b.(*SQLBackend)
	defer sb.Close()

	ctx := context.Background()
	created, err := b.Insert(ctx, model.Item{ID: 50, Name: "Tips", Qty: 2, Unit: "pack", Status: model.StatusLow})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected database-assigned id 1, got %d", created.ID)
	}

	items, err := b.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("List: %v, %d items", err, len(items))
	}
}

func TestHydrateFallsBackToDevice(t *testing.T) {
	ts, server := newTableServer(t)
	ts.mu.Lock()
	ts.fail = 500
	ts.mu.Unlock()

	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())
	remote := NewRESTBackend(server.URL, testKey, "items", server.Client(), zerolog.Nop())

	b, items := Hydrate(context.Background(), remote, device, zerolog.Nop())
	if b != Backend(device) {
		t.Errorf("expected device backend after failed list, got %T", b)
	}
	if len(items) != len(model.Seed()) {
		t.Errorf("expected seed dataset, got %d items", len(items))
	}
}

func TestHydrateRemote(t *testing.T) {
	ts, server := newTableServer(t)
	ts.put(map[string]any{"id": 1, "name": "A"})

	device := NewDeviceBackend(db.NewTestDB(t), zerolog.Nop())
	remote := NewRESTBackend(server.URL, testKey, "items", server.Client(), zerolog.Nop())

	b, items := Hydrate(context.Background(), remote, device, zerolog.Nop())
	if b != Backend(remote) {
		t.Errorf("expected remote backend, got %T", b)
	}
	if len(items) != 1 || items[0].Name != "A" {
		t.Errorf("unexpected items %+v", items)
	}
}
