package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/export"
	"github.com/biomintech/labstock/internal/inventory"
	"github.com/biomintech/labstock/internal/model"
	"github.com/biomintech/labstock/internal/query"
)

// ItemsHandler handles the item collection endpoints.
type ItemsHandler struct {
	Store *inventory.Store
	Log   zerolog.Logger
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

type setQtyRequest struct {
	Qty any `json:"qty"`
}

type checkedByRequest struct {
	CheckedBy []string `json:"checked_by"`
}

type toggleRequest struct {
	Selection []string `json:"selection"`
	Name      string   `json:"name"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := query.SpecFromValues(r.URL.Query())
	jsonResponse(w, http.StatusOK, query.View(h.Store.Items(), spec))
}

// Summary handles GET /api/items/summary.
func (h *ItemsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, query.Summarize(h.Store.Items()))
}

// Options handles GET /api/items/options.
func (h *ItemsHandler) Options(w http.ResponseWriter, r *http.Request) {
	categories, locations := query.Options(h.Store.Items())
	jsonResponse(w, http.StatusOK, map[string][]string{
		"categories": categories,
		"locations":  locations,
		"statuses":   query.Statuses(),
	})
}

// Export handles GET /api/items/export.xlsx.
func (h *ItemsHandler) Export(w http.ResponseWriter, r *http.Request) {
	view := query.View(h.Store.Items(), query.SpecFromValues(r.URL.Query()))

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, view, time.Local); err != nil {
		h.Log.Error().Err(err).Msg("exporting inventory")
		jsonError(w, http.StatusInternalServerError, "failed to export inventory")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.Add(r.Context(), draft)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.Store.Get(id)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. The caller must pass confirm=true.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if !confirmed(r) {
		jsonError(w, http.StatusPreconditionRequired, "deletion must be confirmed")
		return
	}

	if err := h.Store.Remove(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Adjust handles POST /api/items/{id}/adjust.
func (h *ItemsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.AdjustQuantity(r.Context(), id, req.Delta)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// SetQty handles PUT /api/items/{id}/qty.
func (h *ItemsHandler) SetQty(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req setQtyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.SetQuantity(r.Context(), id, req.Qty)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// SetCheckedBy handles PUT /api/items/{id}/checked-by.
func (h *ItemsHandler) SetCheckedBy(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req checkedByRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Store.SetCheckedBy(r.Context(), id, req.CheckedBy)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// ToggleChecker handles POST /api/checked-by/toggle. It only computes the
// pending selection; nothing is stored until SetCheckedBy.
func (h *ItemsHandler) ToggleChecker(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	jsonResponse(w, http.StatusOK, map[string][]string{
		"selection": model.ToggleChecker(req.Selection, req.Name),
	})
}
