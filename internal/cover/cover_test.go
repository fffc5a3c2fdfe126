package cover

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/db"
	"github.com/biomintech/labstock/internal/store"
)

const defaultCover = "https://example.com/lab.jpg"

func TestLoadDefault(t *testing.T) {
	c := Load(context.Background(), db.NewTestDB(t), defaultCover, zerolog.Nop())
	if c.Get() != defaultCover {
		t.Errorf("expected default, got %q", c.Get())
	}
}

func TestSetPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	c := Load(ctx, database, defaultCover, zerolog.Nop())
	if err := c.Set(ctx, "https://cdn.example.org/shelf.png"); err != nil {
		t.Fatal(err)
	}

	again := Load(ctx, database, defaultCover, zerolog.Nop())
	if again.Get() != "https://cdn.example.org/shelf.png" {
		t.Errorf("expected stored cover, got %q", again.Get())
	}

	c.Set(ctx, "")
	if c.Get() != defaultCover {
		t.Errorf("expected empty value to restore default, got %q", c.Get())
	}
	if v, _, _ := store.GetSetting(ctx, database, Key); v != "" {
		t.Errorf("expected stored empty value, got %q", v)
	}
}

func TestSetRejectsInvalid(t *testing.T) {
	c := Load(context.Background(), db.NewTestDB(t), defaultCover, zerolog.Nop())
	for _, ref := range []string{"ftp://x/y.png", "not a url", "data:text/plain;base64,aGk=", "javascript:alert(1)", "//evil.example/x.png", "/\\evil.example/x.png"} {
		if err := c.Set(context.Background(), ref); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("%q: expected ErrInvalidReference, got %v", ref, err)
		}
	}
	if c.Get() != defaultCover {
		t.Errorf("cover changed to %q", c.Get())
	}
}

func TestSetSameOriginPath(t *testing.T) {
	c := Load(context.Background(), db.NewTestDB(t), "https://example.com/a.png", zerolog.Nop())
	for _, ref := range []string{"/BioMINTech.png", "/img/cover.jpg?v=2"} {
		if err := c.Set(context.Background(), ref); err != nil {
			t.Fatalf("%q: %v", ref, err)
		}
		if c.Get() != ref {
			t.Errorf("expected %q, got %q", ref, c.Get())
		}
	}
}

func TestSetImage(t *testing.T) {
	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 16)))

	c := Load(context.Background(), db.NewTestDB(t), defaultCover, zerolog.Nop())
	uri, err := c.SetImage(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") || c.Get() != uri {
		t.Errorf("unexpected cover %.40s", c.Get())
	}
}

func TestLoadReadFaultUsesDefault(t *testing.T) {
	database := db.NewTestDB(t)
	database.Close()

	c := Load(context.Background(), database, defaultCover, zerolog.Nop())
	if c.Get() != defaultCover {
		t.Errorf("expected default on read fault, got %q", c.Get())
	}
	if err := c.Set(context.Background(), "https://example.com/x.png"); err != nil {
		t.Errorf("write fault must not be returned: %v", err)
	}
}
