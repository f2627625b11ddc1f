package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Booking statuses. A booking starts pending, is confirmed once payment is
// captured, and ends completed or cancelled.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var (
	// ErrNotFound indicates the booking does not exist or belongs to someone else.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidInput is returned when the provided payload is invalid.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTransition is returned for status changes the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSlotTaken indicates the stylist already has a booking in that window.
	ErrSlotTaken = errors.New("time slot not available")
)

// Booking is a confirmed-or-pending appointment. Monetary amounts are in øre.
type Booking struct {
	ID             uuid.UUID  `json:"id"`
	CustomerID     uuid.UUID  `json:"customerId"`
	StylistID      uuid.UUID  `json:"stylistId"`
	StartsAt       time.Time  `json:"startsAt"`
	DurationMin    int32      `json:"durationMinutes"`
	Status         string     `json:"status"`
	DiscountCode   *string    `json:"discountCode,omitempty"`
	DiscountAmount int64      `json:"discountAmount"`
	TrialAmount    int64      `json:"trialSessionAmount"`
	Subtotal       int64      `json:"subtotal"`
	Total          int64      `json:"total"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
}

// Item is a booked service line.
type Item struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	UnitPrice   int64     `json:"unitPrice"`
	Qty         int32     `json:"qty"`
	Subtotal    int64     `json:"subtotal"`
}

// MoveToDate shifts a booking start to a new calendar date, keeping the
// original wall-clock time and location.
func MoveToDate(start time.Time, newDate time.Time) time.Time {
	return time.Date(
		newDate.Year(), newDate.Month(), newDate.Day(),
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(),
		start.Location(),
	)
}

// Overlaps reports whether two appointment windows intersect. Back-to-back
// appointments (one ending exactly when the other starts) do not overlap.
func Overlaps(aStart time.Time, aMin int32, bStart time.Time, bMin int32) bool {
	aEnd := aStart.Add(time.Duration(aMin) * time.Minute)
	bEnd := bStart.Add(time.Duration(bMin) * time.Minute)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
