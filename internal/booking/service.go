package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowbook/backend-glowbook/internal/events"
	"github.com/glowbook/backend-glowbook/internal/obs"
)

// Store defines the persistence operations required by the booking service.
type Store interface {
	CreateWithItems(ctx context.Context, b Booking, items []Item) error
	GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]Booking, error)
	ListItems(ctx context.Context, bookingID uuid.UUID) ([]Item, error)
	ListActiveByStylistBetween(ctx context.Context, stylistID uuid.UUID, from, to time.Time) ([]Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error
	UpdateStartsAt(ctx context.Context, id uuid.UUID, startsAt, updatedAt time.Time) error
}

// Detail is a booking together with its service lines.
type Detail struct {
	Booking
	Items []Item `json:"items"`
}

// Emails resolves the customer's address for lifecycle mail.
type Emails interface {
	EmailByID(ctx context.Context, id uuid.UUID) (string, error)
}

// Service encapsulates the booking lifecycle for customers.
type Service struct {
	Store  Store
	Bus    *events.Bus
	Emails Emails
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns the customer's bookings, newest first.
func (s *Service) List(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]Booking, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("booking service not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.ListByCustomer(ctx, customerID, limit, offset)
}

// Get loads a booking with its lines, scoped to the owning customer.
func (s *Service) Get(ctx context.Context, id, customerID uuid.UUID) (Detail, error) {
	if s == nil || s.Store == nil {
		return Detail{}, errors.New("booking service not configured")
	}
	b, err := s.Store.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return Detail{}, err
	}
	items, err := s.Store.ListItems(ctx, b.ID)
	if err != nil {
		return Detail{}, err
	}
	if items == nil {
		items = []Item{}
	}
	return Detail{Booking: b, Items: items}, nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *Service) Cancel(ctx context.Context, id, customerID uuid.UUID) (Booking, error) {
	if s == nil || s.Store == nil {
		return Booking{}, errors.New("booking service not configured")
	}
	b, err := s.Store.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return Booking{}, err
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return Booking{}, fmt.Errorf("cannot cancel a %s booking: %w", b.Status, ErrInvalidTransition)
	}
	now := s.now()
	if err := s.Store.UpdateStatus(ctx, b.ID, StatusCancelled, now); err != nil {
		return Booking{}, err
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
	b.CancelledAt = &now
	if obs.BookingCancelledTotal != nil {
		obs.BookingCancelledTotal.Inc()
	}
	s.emit(ctx, events.TopicBookingCancelled, b)
	return b, nil
}

// Reschedule moves the booking to the same wall-clock time on a new date,
// after checking the stylist's calendar for that day.
func (s *Service) Reschedule(ctx context.Context, id, customerID uuid.UUID, newDate time.Time) (Booking, error) {
	if s == nil || s.Store == nil {
		return Booking{}, errors.New("booking service not configured")
	}
	b, err := s.Store.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return Booking{}, err
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return Booking{}, fmt.Errorf("cannot reschedule a %s booking: %w", b.Status, ErrInvalidTransition)
	}

	newStart := MoveToDate(b.StartsAt, newDate)
	now := s.now()
	if newStart.Before(now) {
		return Booking{}, fmt.Errorf("new date is in the past: %w", ErrInvalidInput)
	}

	dayStart := time.Date(newStart.Year(), newStart.Month(), newStart.Day(), 0, 0, 0, 0, newStart.Location())
	existing, err := s.Store.ListActiveByStylistBetween(ctx, b.StylistID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return Booking{}, err
	}
	for _, other := range existing {
		if other.ID == b.ID {
			continue
		}
		if Overlaps(newStart, b.DurationMin, other.StartsAt, other.DurationMin) {
			return Booking{}, ErrSlotTaken
		}
	}

	if err := s.Store.UpdateStartsAt(ctx, b.ID, newStart, now); err != nil {
		return Booking{}, err
	}
	b.StartsAt = newStart
	b.UpdatedAt = now
	s.emit(ctx, events.TopicBookingRescheduled, b)
	return b, nil
}

func (s *Service) emit(ctx context.Context, topic string, b Booking) {
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
	if _, err := s.Bus.Emit(ctx, topic, b.ID, payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("topic", topic).
			Str("booking_id", b.ID.String()).
			Msg("emit booking event")
	}
}
