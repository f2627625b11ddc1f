package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/glowbook/backend-glowbook/internal/events"
)

// Enqueuer turns booking domain events into queued email tasks. It implements
// events.Notifier on the API side; the worker consumes the tasks.
type Enqueuer struct {
	Client  *asynq.Client
	Enabled bool
}

// Notify enqueues an email task for booking lifecycle topics. Events without
// a recipient are skipped silently.
func (e Enqueuer) Notify(ctx context.Context, ev events.Event) error {
	if !e.Enabled || e.Client == nil {
		return nil
	}
	switch ev.Topic {
	case events.TopicBookingCreated, events.TopicBookingCancelled, events.TopicBookingRescheduled:
	default:
		return nil
	}

	var payload BookingEmailPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return fmt.Errorf("notify: decode event payload: %w", err)
	}
	if strings.TrimSpace(payload.CustomerEmail) == "" {
		return nil
	}
	payload.Topic = ev.Topic
	payload.BookingID = ev.AggregateID.String()

	task, err := NewBookingEmailTask(payload)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("notify: enqueue email task: %w", err)
	}
	return nil
}
