package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/biomintech/labstock/internal/cover"
	"github.com/biomintech/labstock/internal/imaging"
)

// CoverHandler handles the cover image reference.
type CoverHandler struct {
	Cover *cover.Cover
}

type coverRequest struct {
	URL string `json:"url"`
}

// Get handles GET /api/cover.
func (h *CoverHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"url": h.Cover.Get()})
}

// Update handles PUT /api/cover. A multipart upload in field "image" is
// normalized and stored as a data URI; a JSON body sets a plain URL.
func (h *CoverHandler) Update(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req coverRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.Cover.Set(r.Context(), req.URL); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"url": h.Cover.Get()})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	uri, err := h.Cover.SetImage(r.Context(), file)
	switch {
	case errors.Is(err, imaging.ErrUnsupported), errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"url": uri})
}
