package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/backend-glowbook/internal/booking"
	"github.com/glowbook/backend-glowbook/internal/common"
	"github.com/glowbook/backend-glowbook/internal/discount"
	"github.com/glowbook/backend-glowbook/internal/obs"
	"github.com/glowbook/backend-glowbook/internal/payment"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	Svc *Service
}

// Checkout converts the authenticated customer's cart into a booking.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	raw, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	customerID, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid subject", nil)
		return
	}

	var req struct {
		StartsAt       time.Time `json:"startsAt"`
		DiscountCode   string    `json:"discountCode"`
		TrialServiceID string    `json:"trialServiceId"`
		ReturnURL      string    `json:"returnUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	input := Request{
		StartsAt:     req.StartsAt,
		DiscountCode: strings.TrimSpace(req.DiscountCode),
		ReturnURL:    strings.TrimSpace(req.ReturnURL),
	}
	if trimmed := strings.TrimSpace(req.TrialServiceID); trimmed != "" {
		id, err := uuid.Parse(trimmed)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid trial service id", nil)
			return
		}
		input.TrialServiceID = &id
	}

	result, err := h.Svc.Checkout(r.Context(), customerID, input)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	countCheckout("success")
	common.JSON(w, http.StatusCreated, map[string]any{"data": result})
}

func countCheckout(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		countCheckout("empty_cart")
		common.JSONError(w, http.StatusUnprocessableEntity, "EMPTY_CART", "cart is empty", nil)
	case errors.Is(err, booking.ErrSlotTaken):
		countCheckout("slot_taken")
		common.JSONError(w, http.StatusConflict, "SLOT_TAKEN", "time slot not available", nil)
	case errors.Is(err, discount.ErrNotFound):
		common.JSONError(w, http.StatusUnprocessableEntity, "DISCOUNT_INVALID", "discount not found", nil)
	case errors.Is(err, discount.ErrInactive),
		errors.Is(err, discount.ErrNotStarted),
		errors.Is(err, discount.ErrExpired):
		common.JSONError(w, http.StatusUnprocessableEntity, "DISCOUNT_INVALID", err.Error(), nil)
	case errors.Is(err, payment.ErrProviderUnavailable):
		countCheckout("payment_unavailable")
		common.JSONError(w, http.StatusBadGateway, "PAYMENT_UNAVAILABLE", "payment provider unavailable", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		countCheckout("error")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
	}
}
