package discount

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/glowbook/backend-glowbook/internal/common"
)

// Handler exposes administrative discount management plus public validation.
type Handler struct {
	Svc *Service
}

type discountPayload struct {
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	Percent        *int32     `json:"percent"`
	Amount         *int64     `json:"amount"`
	MaxOrderAmount *int64     `json:"maxOrderAmount"`
	ValidFrom      *time.Time `json:"validFrom"`
	ValidTo        *time.Time `json:"validTo"`
	Active         *bool      `json:"active"`
}

func (p discountPayload) input() Input {
	return Input{
		Code:           p.Code,
		Description:    p.Description,
		Percent:        p.Percent,
		Amount:         p.Amount,
		MaxOrderAmount: p.MaxOrderAmount,
		ValidFrom:      p.ValidFrom,
		ValidTo:        p.ValidTo,
		Active:         p.Active,
	}
}

// Create inserts a new discount code.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "discount service not configured", nil)
		return
	}
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	rec, err := h.Svc.Create(r.Context(), payload.input())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "discount code already exists", nil)
			return
		}
		if errors.Is(err, ErrInvalidInput) {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create discount", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": rec})
}

// Update mutates an existing discount identified by code.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "discount service not configured", nil)
		return
	}
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	var payload discountPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	rec, err := h.Svc.Update(r.Context(), code, payload.input())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "discount not found", nil)
		case errors.Is(err, ErrInvalidInput):
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update discount", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rec})
}

// List returns a page of discount codes for administrators.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "discount service not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	records, err := h.Svc.List(r.Context(), int32(perPage), int32((page-1)*perPage))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list discounts", nil)
		return
	}
	if records == nil {
		records = []Record{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": records})
}

// Validate evaluates a code against an order amount without persisting state.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "discount service not configured", nil)
		return
	}
	var req struct {
		Code        string `json:"code"`
		OrderAmount int64  `json:"orderAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	quote, err := h.Svc.Quote(r.Context(), req.Code, req.OrderAmount)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

func writeQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "discount not found", nil)
	case errors.Is(err, ErrInactive), errors.Is(err, ErrNotStarted), errors.Is(err, ErrExpired):
		common.JSONError(w, http.StatusUnprocessableEntity, "NOT_ELIGIBLE", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to validate discount", nil)
	}
}
