// Package persist mirrors the in-memory collection to durable storage. The
// rest of the program is written against Backend only; Select picks the
// concrete implementation once at startup.
package persist

import (
	"context"

	"github.com/biomintech/labstock/internal/model"
)

// Mode names the kind of storage behind a Backend.
type Mode string

// Persistence modes.
const (
	// ModeRemote is a hosted table; the backend assigns ids on insert.
	ModeRemote Mode = "remote"
	// ModeDevice is the on-device store; the caller assigns ids.
	ModeDevice Mode = "device"
)

// Backend is the persistence contract: list, insert, update by id with a
// partial patch, delete by id.
type Backend interface {
	Mode() Mode
	List(ctx context.Context) ([]model.Item, error)
	Insert(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, id int64, patch model.Patch) error
	Delete(ctx context.Context, id int64) error
}
