package api

import (
	"errors"
	"net/http"

	"github.com/biomintech/labstock/internal/checkers"
)

// CheckersHandler handles the reviewer registry.
type CheckersHandler struct {
	Registry *checkers.Registry
}

type createCheckerRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/checkers.
func (h *CheckersHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Registry.List())
}

// Create handles POST /api/checkers.
func (h *CheckersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCheckerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, err := h.Registry.Add(r.Context(), req.Name)
	switch {
	case errors.Is(err, checkers.ErrEmptyName):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, checkers.ErrDuplicate):
		jsonError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to add checker")
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"name": name})
}

// Delete handles DELETE /api/checkers/{name}. The caller must pass
// confirm=true.
func (h *CheckersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		jsonError(w, http.StatusPreconditionRequired, "removal must be confirmed")
		return
	}

	if err := h.Registry.Remove(r.Context(), r.PathValue("name")); err != nil {
		if errors.Is(err, checkers.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "checker not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to remove checker")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "checker removed"})
}
