package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	events []Event
	err    error
}

func (s *memStore) Insert(_ context.Context, ev Event) (Event, error) {
	if s.err != nil {
		return Event{}, s.err
	}
	s.events = append(s.events, ev)
	return ev, nil
}

type recordingNotifier struct {
	seen []Event
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.seen = append(n.seen, ev)
	return n.err
}

func TestEmitPersistsAndNotifies(t *testing.T) {
	store := &memStore{}
	notifier := &recordingNotifier{}
	bus := &Bus{
		Store:     store,
		Notifiers: []Notifier{notifier},
		Now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}

	aggID := uuid.New()
	ev, err := bus.Emit(context.Background(), TopicBookingCreated, aggID, map[string]string{"total": "550"})
	require.NoError(t, err)
	require.Equal(t, TopicBookingCreated, ev.Topic)
	require.Equal(t, aggID, ev.AggregateID)
	require.Len(t, store.events, 1)
	require.Len(t, notifier.seen, 1)
	require.True(t, json.Valid(ev.Payload))
}

func TestEmitNotifierFailureDoesNotLoseEvent(t *testing.T) {
	store := &memStore{}
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	_, err := bus.Emit(context.Background(), TopicBookingCancelled, uuid.New(), nil)
	require.Error(t, err)
	require.Len(t, store.events, 1, "event must persist even when a notifier fails")
}

func TestEmitRejectsBadInput(t *testing.T) {
	bus := &Bus{Store: &memStore{}}

	_, err := bus.Emit(context.Background(), "", uuid.New(), nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), TopicBookingCreated, uuid.Nil, nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), TopicBookingCreated, uuid.New(), json.RawMessage("{not json"))
	require.Error(t, err)
}

func TestEmitStoreFailure(t *testing.T) {
	bus := &Bus{Store: &memStore{err: errors.New("db down")}}

	_, err := bus.Emit(context.Background(), TopicBookingCreated, uuid.New(), nil)
	require.Error(t, err)
}
