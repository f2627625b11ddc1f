package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowbook/backend-glowbook/internal/booking"
	"github.com/glowbook/backend-glowbook/internal/cart"
	"github.com/glowbook/backend-glowbook/internal/catalog"
	"github.com/glowbook/backend-glowbook/internal/discount"
	"github.com/glowbook/backend-glowbook/internal/events"
	"github.com/glowbook/backend-glowbook/internal/obs"
	"github.com/glowbook/backend-glowbook/internal/payment"
	"github.com/glowbook/backend-glowbook/internal/pricing"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidInput is returned when the provided payload is invalid.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSlotTaken indicates the stylist already has a booking in that window.
	ErrSlotTaken = booking.ErrSlotTaken
)

// Carts is the slice of the cart service checkout depends on.
type Carts interface {
	Get(ctx context.Context, customerID string) (cart.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

// Services resolves authoritative service data at checkout time.
type Services interface {
	GetService(ctx context.Context, id uuid.UUID) (catalog.BookableService, error)
}

// Discounts re-evaluates a discount code server-side.
type Discounts interface {
	Quote(ctx context.Context, code string, orderAmount int64) (discount.Quote, error)
}

// Emails resolves the customer's address for confirmation mail.
type Emails interface {
	EmailByID(ctx context.Context, id uuid.UUID) (string, error)
}

// Locking serialises bookings per stylist to prevent double booking.
type Locking interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Request is the checkout payload after handler decoding.
type Request struct {
	StartsAt       time.Time
	DiscountCode   string
	TrialServiceID *uuid.UUID
	ReturnURL      string
}

// Result is returned on successful checkout.
type Result struct {
	Booking        booking.Booking `json:"booking"`
	Items          []booking.Item  `json:"items"`
	Totals         pricing.Totals  `json:"totals"`
	TotalFormatted string          `json:"totalFormatted"`
	Payment        *payment.Intent `json:"payment,omitempty"`
}

// Service runs the checkout flow: server-side revalidation of prices and
// discount, totals computation, booking creation, payment intent, cart clear.
type Service struct {
	Carts     Carts
	Catalog   Services
	Discounts Discounts
	Bookings  booking.Store
	Payments  payment.Provider
	Bus       *events.Bus
	Emails    Emails
	Locker    Locking
	LockTTL   time.Duration
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Checkout converts the customer's cart into a pending booking.
func (s *Service) Checkout(ctx context.Context, customerID uuid.UUID, req Request) (Result, error) {
	if s == nil || s.Carts == nil || s.Catalog == nil || s.Bookings == nil {
		return Result{}, errors.New("checkout service not configured")
	}
	if req.StartsAt.IsZero() || req.StartsAt.Before(s.now()) {
		return Result{}, fmt.Errorf("start time must be in the future: %w", ErrInvalidInput)
	}

	c, err := s.Carts.Get(ctx, customerID.String())
	if err != nil {
		return Result{}, err
	}
	if c.Empty() {
		return Result{}, ErrEmptyCart
	}
	stylistID, err := uuid.Parse(c.StylistID)
	if err != nil {
		return Result{}, fmt.Errorf("cart stylist id: %w", ErrInvalidInput)
	}

	// Re-read authoritative prices; never trust the cart's copies.
	bookingID := uuid.New()
	var (
		items       []booking.Item
		priceItems  []pricing.Item
		durationMin int32
		trial       *pricing.TrialSession
	)
	for _, line := range c.Items {
		serviceID, err := uuid.Parse(line.ServiceID)
		if err != nil {
			return Result{}, fmt.Errorf("cart service id: %w", ErrInvalidInput)
		}
		svc, err := s.Catalog.GetService(ctx, serviceID)
		if err != nil {
			return Result{}, err
		}
		if svc.StylistID != stylistID || !svc.Active {
			return Result{}, fmt.Errorf("service %s is not bookable: %w", svc.Name, ErrInvalidInput)
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}
		items = append(items, booking.Item{
			ID:          uuid.New(),
			BookingID:   bookingID,
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			UnitPrice:   svc.Price,
			Qty:         qty,
			Subtotal:    int64(qty) * svc.Price,
		})
		priceItems = append(priceItems, pricing.Item{Qty: int(qty), UnitPrice: svc.Price})
		durationMin += svc.DurationMinutes * qty
		if req.TrialServiceID != nil && *req.TrialServiceID == svc.ID && svc.TrialPrice != nil {
			trial = &pricing.TrialSession{Price: *svc.TrialPrice}
		}
	}
	if req.TrialServiceID != nil && trial == nil {
		return Result{}, fmt.Errorf("trial session not offered for that service: %w", ErrInvalidInput)
	}

	// Recompute the discount server-side from the stored record.
	var (
		discountAmount int64
		discountCode   *string
	)
	if req.DiscountCode != "" {
		if s.Discounts == nil {
			return Result{}, errors.New("checkout service not configured")
		}
		orderAmount := sumSubtotal(priceItems, trial)
		quote, err := s.Discounts.Quote(ctx, req.DiscountCode, orderAmount)
		if err != nil {
			return Result{}, err
		}
		discountAmount = quote.DiscountAmount
		discountCode = &quote.Code
	}

	totals := pricing.Compute(priceItems, trial, discountAmount)
	now := s.now()
	b := booking.Booking{
		ID:             bookingID,
		CustomerID:     customerID,
		StylistID:      stylistID,
		StartsAt:       req.StartsAt,
		DurationMin:    durationMin,
		Status:         booking.StatusPending,
		DiscountCode:   discountCode,
		DiscountAmount: totals.Discount,
		TrialAmount:    totals.TrialSessionAmount,
		Subtotal:       totals.SubtotalBeforeDiscount,
		Total:          totals.Total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	create := func(ctx context.Context) error {
		dayStart := time.Date(req.StartsAt.Year(), req.StartsAt.Month(), req.StartsAt.Day(),
			0, 0, 0, 0, req.StartsAt.Location())
		existing, err := s.Bookings.ListActiveByStylistBetween(ctx, stylistID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		for _, other := range existing {
			if booking.Overlaps(req.StartsAt, durationMin, other.StartsAt, other.DurationMin) {
				return booking.ErrSlotTaken
			}
		}
		return s.Bookings.CreateWithItems(ctx, b, items)
	}
	if s.Locker != nil {
		err = s.Locker.WithLock(ctx, "glowbook:booking:stylist:"+stylistID.String(), s.LockTTL, create)
	} else {
		err = create(ctx)
	}
	if err != nil {
		return Result{}, err
	}
	if obs.BookingCreatedTotal != nil {
		obs.BookingCreatedTotal.Inc()
	}

	result := Result{
		Booking:        b,
		Items:          items,
		Totals:         totals,
		TotalFormatted: pricing.FormatCurrency(totals.Total),
	}

	if s.Payments != nil && totals.Total > 0 {
		intent, err := s.Payments.CreateIntent(ctx, payment.IntentRequest{
			BookingID: b.ID.String(),
			Amount:    totals.Total,
			Currency:  "NOK",
			ReturnURL: req.ReturnURL,
		})
		if err != nil {
			return Result{}, err
		}
		result.Payment = &intent
	}

	if err := s.Carts.Clear(ctx, customerID.String()); err != nil {
		return Result{}, err
	}

	s.emitCreated(ctx, b)
	return result, nil
}

func (s *Service) emitCreated(ctx context.Context, b booking.Booking) {
	if s.Bus == nil {
		return
	}
	payload := map[string]any{
		"bookingId": b.ID.String(),
		"startsAt":  b.StartsAt,
		"total":     b.Total,
	}
	if s.Emails != nil {
		if email, err := s.Emails.EmailByID(ctx, b.CustomerID); err == nil && email != "" {
			payload["customerEmail"] = email
		}
	}
	if _, err := s.Bus.Emit(ctx, events.TopicBookingCreated, b.ID, payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("booking_id", b.ID.String()).
			Msg("emit booking created event")
	}
}

func sumSubtotal(items []pricing.Item, trial *pricing.TrialSession) int64 {
	totals := pricing.Compute(items, trial, 0)
	return totals.SubtotalBeforeDiscount
}
