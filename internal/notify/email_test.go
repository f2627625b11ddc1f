package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/backend-glowbook/internal/common"
	"github.com/glowbook/backend-glowbook/internal/events"
)

func mustTask(t *testing.T, p BookingEmailPayload) *asynq.Task {
	t.Helper()
	task, err := NewBookingEmailTask(p)
	require.NoError(t, err)
	return task
}

func TestHandleBookingEmailConfirmation(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	worker := EmailWorker{Mail: outbox, From: "noreply@glowbook.no"}

	task := mustTask(t, BookingEmailPayload{
		Topic:         events.TopicBookingCreated,
		BookingID:     "bk-1",
		CustomerEmail: "kari@example.no",
		StartsAt:      time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		Total:         55_000,
	})
	require.NoError(t, worker.HandleBookingEmail(context.Background(), task))
	require.Len(t, outbox.Outbox, 1)
	require.Equal(t, "kari@example.no", outbox.Outbox[0].To)
	require.Equal(t, "Bekreftelse på din booking", outbox.Outbox[0].Subject)
	require.Contains(t, outbox.Outbox[0].HTML, "550,00 kr")
}

func TestHandleBookingEmailCancellation(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	worker := EmailWorker{Mail: outbox}

	task := mustTask(t, BookingEmailPayload{
		Topic:         events.TopicBookingCancelled,
		CustomerEmail: "kari@example.no",
		StartsAt:      time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, worker.HandleBookingEmail(context.Background(), task))
	require.Len(t, outbox.Outbox, 1)
	require.Equal(t, "Din time er avbestilt", outbox.Outbox[0].Subject)
}

func TestHandleBookingEmailMalformedPayloadSkipsRetry(t *testing.T) {
	worker := EmailWorker{Mail: &common.InMemoryEmail{}}
	task := asynq.NewTask(TaskBookingEmail, []byte("{not json"))

	err := worker.HandleBookingEmail(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleBookingEmailWithoutRecipient(t *testing.T) {
	outbox := &common.InMemoryEmail{}
	worker := EmailWorker{Mail: outbox}

	data, err := json.Marshal(BookingEmailPayload{Topic: events.TopicBookingCreated})
	require.NoError(t, err)

	require.NoError(t, worker.HandleBookingEmail(context.Background(), asynq.NewTask(TaskBookingEmail, data)))
	require.Empty(t, outbox.Outbox)
}
