package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/glowbook/backend-glowbook/internal/common"
)

// Handler exposes public catalog browsing endpoints.
type Handler struct {
	Svc *Service
}

// ListStylists returns active stylists, optionally filtered by ?city=.
func (h *Handler) ListStylists(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	stylists, err := h.Svc.ListStylists(r.Context(), city, int32(perPage), int32((page-1)*perPage))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list stylists", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": stylists})
}

// GetStylist returns a stylist profile with its treatments.
func (h *Handler) GetStylist(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "slug is required", nil)
		return
	}
	detail, err := h.Svc.GetStylist(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "stylist not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load stylist", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": detail})
}
