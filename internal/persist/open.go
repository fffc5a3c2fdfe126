package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/db"
	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/store"
)

// DefaultTable is the remote table holding the items.
const DefaultTable = "items"

// RemoteConfig holds the externally supplied connection parameters.
type RemoteConfig struct {
	URL     string
	Key     string
	Table   string
	Timeout time.Duration
}

// Enabled reports whether both connection parameters are present.
func (c RemoteConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.Key) != ""
}

// Open builds the remote backend described by cfg. The URL scheme picks the
// transport: http(s) for the hosted table API, postgres for a direct
// connection, sqlite for a shared database file.
func Open(ctx context.Context, cfg RemoteConfig, log zerolog.Logger) (Backend, error) {
	if !cfg.Enabled() {
		return nil, errors.New("remote backend not configured")
	}

	endpoint := strings.TrimSpace(cfg.URL)
	key := strings.TrimSpace(cfg.Key)
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	if !store.ValidTable(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	// The table API is the authority on keys; claims are only reported.
	info, err := InspectKey(key, time.Now())
	if errors.Is(err, ErrKeyExpired) {
		log.Warn().Time("expired_at", *info.ExpiresAt).Msg("access key has expired, remote requests may be rejected")
	}
	if info.Role == "service_role" {
		log.Warn().Msg("access key carries the service_role role")
	}
	if info.JWT {
		log.Debug().Str("role", info.Role).Msg("access key inspected")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing remote url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		client := &http.Client{Timeout: cfg.Timeout}
		return NewRESTBackend(endpoint, key, table, client, log), nil

	case "postgres", "postgresql":
		if _, hasPassword := u.User.Password(); !hasPassword && u.User != nil {
			u.User = url.UserPassword(u.User.Username(), key)
		}
		conn, err := sql.Open("postgres", u.String())
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		b, err := NewSQLBackend(conn, store.Postgres, table, log)
		if err != nil {
			conn.Close()
			return nil, err
		}
		b.owned = true
		return b, nil

	case "sqlite":
		path := u.Opaque
		if path == "" {
			path = u.Host + u.Path
		}
		conn, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		b, err := NewSQLBackend(conn, store.SQLite, table, log)
		if err != nil {
			conn.Close()
			return nil, err
		}
		b.owned = true
		return b, nil

	default:
		return nil, fmt.Errorf("unsupported remote url scheme %q", u.Scheme)
	}
}

// Select chooses the session backend once at startup: the remote backend
// when it is configured and can be built, the device backend otherwise.
func Select(ctx context.Context, cfg RemoteConfig, device *DeviceBackend, log zerolog.Logger) Backend {
	if !cfg.Enabled() {
		log.Info().Msg("remote backend not configured, using on-device storage")
		return device
	}
	b, err := Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("remote backend unavailable, using on-device storage")
		return device
	}
	log.Info().Str("mode", string(b.Mode())).Msg("remote backend selected")
	return b
}

// Hydrate loads the starting collection from b. When a remote list fails the
// session falls back to the device backend, which never fails.
func Hydrate(ctx context.Context, b Backend, device *DeviceBackend, log zerolog.Logger) (Backend, []model.Item) {
	items, err := b.List(ctx)
	if err == nil {
		return b, items
	}

	log.Error().Err(&PersistenceError{Op: "list", Err: err}).Msg("loading inventory failed, falling back to on-device storage")
	if c, ok := b.(interface{ Close() error }); ok {
		c.Close()
	}
	items, _ = device.List(ctx)
	return device, items
}
