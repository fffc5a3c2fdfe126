// Package api exposes the inventory over a JSON HTTP interface.
package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/checkers"
	"github.com/biomintech/labstock/internal/cover"
	"github.com/biomintech/labstock/internal/inventory"
	"github.com/biomintech/labstock/internal/notify"
)

// Deps are the components the handlers work on.
type Deps struct {
	Store    *inventory.Store
	Checkers *checkers.Registry
	Cover    *cover.Cover
	Hub      *notify.Hub
	Log      zerolog.Logger
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	items := &ItemsHandler{Store: d.Store, Log: d.Log}
	settings := &SettingsHandler{Store: d.Store}
	checkersHandler := &CheckersHandler{Registry: d.Checkers}
	coverHandler := &CoverHandler{Cover: d.Cover}

	mux.HandleFunc("GET /api/status", settings.Status)
	mux.HandleFunc("GET /api/settings", settings.Get)
	mux.HandleFunc("PUT /api/settings", settings.Update)

	// Derived views.
	mux.HandleFunc("GET /api/items", items.List)
	mux.HandleFunc("GET /api/items/summary", items.Summary)
	mux.HandleFunc("GET /api/items/options", items.Options)
	mux.HandleFunc("GET /api/items/export.xlsx", items.Export)

	// Mutations.
	mux.HandleFunc("POST /api/items", items.Create)
	mux.HandleFunc("GET /api/items/{id}", items.Get)
	mux.HandleFunc("DELETE /api/items/{id}", items.Delete)
	mux.HandleFunc("POST /api/items/{id}/adjust", items.Adjust)
	mux.HandleFunc("PUT /api/items/{id}/qty", items.SetQty)
	mux.HandleFunc("PUT /api/items/{id}/checked-by", items.SetCheckedBy)
	mux.HandleFunc("POST /api/checked-by/toggle", items.ToggleChecker)

	mux.HandleFunc("GET /api/checkers", checkersHandler.List)
	mux.HandleFunc("POST /api/checkers", checkersHandler.Create)
	mux.HandleFunc("DELETE /api/checkers/{name}", checkersHandler.Delete)

	mux.HandleFunc("GET /api/cover", coverHandler.Get)
	mux.HandleFunc("PUT /api/cover", coverHandler.Update)

	if d.Hub != nil {
		mux.Handle("GET /api/notifications", d.Hub)
	}

	return mux
}
