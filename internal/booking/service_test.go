package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/backend-glowbook/internal/events"
)

type memEventStore struct {
	events []events.Event
}

func (s *memEventStore) Insert(_ context.Context, ev events.Event) (events.Event, error) {
	s.events = append(s.events, ev)
	return ev, nil
}

type stubBookingStore struct {
	bookings map[uuid.UUID]Booking
	items    map[uuid.UUID][]Item
}

func newStubBookingStore() *stubBookingStore {
	return &stubBookingStore{
		bookings: map[uuid.UUID]Booking{},
		items:    map[uuid.UUID][]Item{},
	}
}

func (s *stubBookingStore) CreateWithItems(_ context.Context, b Booking, items []Item) error {
	s.bookings[b.ID] = b
	s.items[b.ID] = items
	return nil
}

func (s *stubBookingStore) GetForCustomer(_ context.Context, id, customerID uuid.UUID) (Booking, error) {
	b, ok := s.bookings[id]
	if !ok || b.CustomerID != customerID {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *stubBookingStore) ListByCustomer(_ context.Context, customerID uuid.UUID, limit, offset int32) ([]Booking, error) {
	var out []Booking
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) ListItems(_ context.Context, bookingID uuid.UUID) ([]Item, error) {
	return s.items[bookingID], nil
}

func (s *stubBookingStore) ListActiveByStylistBetween(_ context.Context, stylistID uuid.UUID, from, to time.Time) ([]Booking, error) {
	var out []Booking
	for _, b := range s.bookings {
		if b.StylistID != stylistID {
			continue
		}
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		if !b.StartsAt.Before(from) && b.StartsAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) UpdateStatus(_ context.Context, id uuid.UUID, status string, at time.Time) error {
	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	s.bookings[id] = b
	return nil
}

func (s *stubBookingStore) UpdateStartsAt(_ context.Context, id uuid.UUID, startsAt, updatedAt time.Time) error {
	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.StartsAt = startsAt
	b.UpdatedAt = updatedAt
	s.bookings[id] = b
	return nil
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newBookingService(store *stubBookingStore) *Service {
	return &Service{Store: store, Now: func() time.Time { return testNow }}
}

func seedBooking(store *stubBookingStore, status string, startsAt time.Time, durationMin int32) Booking {
	b := Booking{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		StylistID:   uuid.New(),
		StartsAt:    startsAt,
		DurationMin: durationMin,
		Status:      status,
	}
	store.bookings[b.ID] = b
	return b
}

func TestMoveToDateKeepsWallClock(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	start := time.Date(2025, 6, 10, 14, 30, 0, 0, loc)
	newDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	moved := MoveToDate(start, newDate)
	require.Equal(t, 14, moved.Hour())
	require.Equal(t, 30, moved.Minute())
	require.Equal(t, time.July, moved.Month())
	require.Equal(t, loc, moved.Location())
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

	require.True(t, Overlaps(base, 60, base.Add(30*time.Minute), 60))
	require.False(t, Overlaps(base, 60, base.Add(60*time.Minute), 60))
	require.True(t, Overlaps(base, 90, base.Add(60*time.Minute), 30))
	require.False(t, Overlaps(base, 30, base.Add(-30*time.Minute), 30))
}

func TestCancelPendingBooking(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusPending, testNow.AddDate(0, 0, 7), 60)
	svc := newBookingService(store)

	cancelled, err := svc.Cancel(context.Background(), b.ID, b.CustomerID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusCompleted, testNow.AddDate(0, 0, -7), 60)
	svc := newBookingService(store)

	_, err := svc.Cancel(context.Background(), b.ID, b.CustomerID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelWrongCustomer(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusPending, testNow.AddDate(0, 0, 7), 60)
	svc := newBookingService(store)

	_, err := svc.Cancel(context.Background(), b.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRescheduleMovesDate(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusConfirmed, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), 60)
	svc := newBookingService(store)

	moved, err := svc.Reschedule(context.Background(), b.ID, b.CustomerID,
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC), moved.StartsAt)
}

func TestRescheduleIntoTakenSlot(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusConfirmed, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), 60)

	other := Booking{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		StylistID:   b.StylistID,
		StartsAt:    time.Date(2025, 6, 20, 14, 30, 0, 0, time.UTC),
		DurationMin: 60,
		Status:      StatusConfirmed,
	}
	store.bookings[other.ID] = other

	svc := newBookingService(store)
	_, err := svc.Reschedule(context.Background(), b.ID, b.CustomerID,
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestRescheduleIntoPastRejected(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusConfirmed, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), 60)
	svc := newBookingService(store)

	_, err := svc.Reschedule(context.Background(), b.ID, b.CustomerID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRescheduleIgnoresOwnSlot(t *testing.T) {
	store := newStubBookingStore()
	b := seedBooking(store, StatusConfirmed, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), 60)
	svc := newBookingService(store)

	// Moving to the same date must not collide with the booking itself.
	moved, err := svc.Reschedule(context.Background(), b.ID, b.CustomerID,
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, b.StartsAt, moved.StartsAt)
}

func TestCancelEmitsCancelledEvent(t *testing.T) {
	store := newStubBookingStore()
	eventStore := &memEventStore{}
	svc := newBookingService(store)
	svc.Bus = &events.Bus{Store: eventStore}

	b := seedBooking(store, StatusConfirmed, testNow.AddDate(0, 0, 7), 60)
	_, err := svc.Cancel(context.Background(), b.ID, b.CustomerID)
	require.NoError(t, err)

	require.Len(t, eventStore.events, 1)
	require.Equal(t, events.TopicBookingCancelled, eventStore.events[0].Topic)
	require.Equal(t, b.ID, eventStore.events[0].AggregateID)
}

func TestRescheduleEmitsRescheduledEvent(t *testing.T) {
	store := newStubBookingStore()
	eventStore := &memEventStore{}
	svc := newBookingService(store)
	svc.Bus = &events.Bus{Store: eventStore}

	b := seedBooking(store, StatusConfirmed, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), 60)
	_, err := svc.Reschedule(context.Background(), b.ID, b.CustomerID,
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, eventStore.events, 1)
	require.Equal(t, events.TopicBookingRescheduled, eventStore.events[0].Topic)
	require.Equal(t, b.ID, eventStore.events[0].AggregateID)
}
