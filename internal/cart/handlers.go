package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/glowbook/backend-glowbook/internal/catalog"
	"github.com/glowbook/backend-glowbook/internal/common"
)

// Handler exposes the customer's cart over HTTP. All routes require an
// authenticated customer; the cart is keyed by the token's subject.
type Handler struct {
	Svc *Service
}

func (h *Handler) customerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := common.UserID(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return "", false
	}
	return id, true
}

// Get returns the customer's cart with computed totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	c, err := h.Svc.Get(r.Context(), customerID)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load cart", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cartView(c)})
}

// AddItem adds a bookable service to the cart. Price and name come from the
// catalog, not the payload. A 409 with needsConfirmation signals a
// cross-stylist add the client must confirm.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	var req struct {
		ServiceID string `json:"serviceId"`
		Qty       int32  `json:"qty"`
		Confirm   bool   `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	result, err := h.Svc.AddItem(r.Context(), customerID, req.ServiceID, req.Qty, req.Confirm)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, catalog.ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "service not found", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to add item", nil)
		}
		return
	}
	if result.NeedsConfirmation {
		common.JSON(w, http.StatusConflict, map[string]any{
			"data": map[string]any{
				"needsConfirmation": true,
				"currentStylistId":  result.Cart.StylistID,
				"cart":              cartView(result.Cart),
			},
		})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cartView(result.Cart)})
}

// UpdateQuantity sets the quantity for a service line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	serviceID := strings.TrimSpace(chi.URLParam(r, "serviceID"))
	var req struct {
		Qty int32 `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	c, err := h.Svc.UpdateQuantity(r.Context(), customerID, serviceID, req.Qty)
	if err != nil {
		writeCartError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cartView(c)})
}

// RemoveItem drops a service line from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	serviceID := strings.TrimSpace(chi.URLParam(r, "serviceID"))
	c, err := h.Svc.RemoveItem(r.Context(), customerID, serviceID)
	if err != nil {
		writeCartError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": cartView(c)})
}

// Clear empties the customer's cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Clear(r.Context(), customerID); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to clear cart", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrItemNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart operation failed", nil)
	}
}

func cartView(c Cart) map[string]any {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return map[string]any{
		"customerId": c.CustomerID,
		"stylistId":  c.StylistID,
		"items":      items,
		"totalItems": c.TotalItems(),
		"totalPrice": c.TotalPrice(),
		"updatedAt":  c.UpdatedAt,
	}
}
