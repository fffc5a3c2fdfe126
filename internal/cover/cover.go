// Package cover keeps the cover image reference shown above the inventory.
// It lives in the on-device store only and is never routed to a remote
// backend.
package cover

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/imaging"
	"github.com/biomintech/labstock/internal/store"
)

// Key is the on-device key of the cover reference.
const Key = "inventory-cover"

// ErrInvalidReference is returned for values that are neither an http(s)
// URL nor an image data URI.
var ErrInvalidReference = errors.New("cover must be an http(s) url or an image data uri")

// Cover is the current cover reference.
type Cover struct {
	db  *sql.DB
	log zerolog.Logger
	def string

	mu    sync.RWMutex
	value string
}

// Load reads the stored reference once. A missing value or a read fault
// yields def.
func Load(ctx context.Context, db *sql.DB, def string, log zerolog.Logger) *Cover {
	c := &Cover{db: db, def: def, value: def, log: log.With().Str("component", "cover").Logger()}

	v, ok, err := store.GetSetting(ctx, db, Key)
	switch {
	case err != nil:
		c.log.Error().Err(err).Msg("reading cover, using default")
	case ok && v != "":
		c.value = v
	}
	return c
}

// Get returns the current reference.
func (c *Cover) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set validates and stores a reference. An empty value restores the
// default. Write faults are logged, not returned.
func (c *Cover) Set(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref != "" && !Valid(ref) {
		return ErrInvalidReference
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = ref
	if ref == "" {
		c.value = c.def
	}
	if err := store.SetSetting(ctx, c.db, Key, ref); err != nil {
		c.log.Error().Err(err).Msg("writing cover")
	}
	return nil
}

// SetImage normalizes an uploaded image and stores it as a data URI.
func (c *Cover) SetImage(ctx context.Context, r io.Reader) (string, error) {
	img, err := imaging.Process(r)
	if err != nil {
		return "", err
	}
	uri := img.DataURI()
	if err := c.Set(ctx, uri); err != nil {
		return "", err
	}
	c.log.Info().Int("width", img.Width).Int("height", img.Height).Int("bytes", len(img.Data)).Msg("cover image stored")
	return uri, nil
}

// Valid reports whether ref is an http(s) URL, a same-origin path such as
// "/BioMINTech.png", or an image data URI.
func Valid(ref string) bool {
	if strings.HasPrefix(ref, "data:image/") {
		return strings.Contains(ref, ";base64,")
	}
	if strings.HasPrefix(ref, "/") {
		// "//host" and "/\host" leave the origin in browsers.
		if strings.HasPrefix(ref, "//") || strings.ContainsAny(ref, "\\ ") {
			return false
		}
		u, err := url.Parse(ref)
		return err == nil && u.Scheme == "" && u.Host == ""
	}
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
