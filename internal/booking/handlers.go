package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glowbook/backend-glowbook/internal/common"
)

// Handler exposes the customer's bookings over HTTP.
type Handler struct {
	Svc *Service
}

func (h *Handler) customerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid subject", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "bookingID"))
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid booking id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// List returns the customer's bookings.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	bookings, err := h.Svc.List(r.Context(), customerID, int32(perPage), int32((page-1)*perPage))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list bookings", nil)
		return
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": bookings})
}

// Get returns a single booking with its lines.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	detail, err := h.Svc.Get(r.Context(), id, customerID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": detail})
}

// Cancel cancels a pending or confirmed booking.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	b, err := h.Svc.Cancel(r.Context(), id, customerID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

// Reschedule moves the booking to a new date at the same time of day.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking service not configured", nil)
		return
	}
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	var req struct {
		NewDate string `json:"newDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	newDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.NewDate))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "newDate must be YYYY-MM-DD", nil)
		return
	}
	b, err := h.Svc.Reschedule(r.Context(), id, customerID, newDate)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": b})
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "booking not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		common.JSONError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrSlotTaken):
		common.JSONError(w, http.StatusConflict, "SLOT_TAKEN", "time slot not available", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "booking operation failed", nil)
	}
}
