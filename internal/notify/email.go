package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/glowbook/backend-glowbook/internal/common"
	"github.com/glowbook/backend-glowbook/internal/events"
	"github.com/glowbook/backend-glowbook/internal/obs"
	"github.com/glowbook/backend-glowbook/internal/pricing"
)

// EmailWorker handles queued booking email tasks on the worker side.
type EmailWorker struct {
	Mail common.EmailSender
	From string
}

// HandleBookingEmail is the asynq handler for TaskBookingEmail tasks.
func (w EmailWorker) HandleBookingEmail(ctx context.Context, task *asynq.Task) error {
	if w.Mail == nil {
		return nil
	}
	var payload BookingEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		countEmailTask("malformed")
		// Malformed payloads will never succeed; skip retries.
		return fmt.Errorf("notify: decode task payload: %w", asynq.SkipRetry)
	}
	if payload.CustomerEmail == "" {
		countEmailTask("skipped")
		return nil
	}
	subject, body := renderBookingEmail(payload)
	if err := w.Mail.Send(payload.CustomerEmail, subject, body); err != nil {
		countEmailTask("failed")
		return fmt.Errorf("notify: send email: %w", err)
	}
	countEmailTask("sent")
	zerolog.Ctx(ctx).Info().
		Str("topic", payload.Topic).
		Str("booking_id", payload.BookingID).
		Msg("booking email sent")
	return nil
}

func countEmailTask(result string) {
	if obs.EmailTaskTotal != nil {
		obs.EmailTaskTotal.WithLabelValues(result).Inc()
	}
}

func renderBookingEmail(p BookingEmailPayload) (subject, body string) {
	when := p.StartsAt.Format("02.01.2006 15:04")
	total := pricing.FormatCurrency(p.Total)

	switch p.Topic {
	case events.TopicBookingCancelled:
		subject = "Din time er avbestilt"
		body = fmt.Sprintf("<p>Timen din %s er avbestilt.</p>", when)
	case events.TopicBookingRescheduled:
		subject = "Din time er flyttet"
		body = fmt.Sprintf("<p>Timen din er flyttet til %s.</p>", when)
	default:
		subject = "Bekreftelse på din booking"
		body = fmt.Sprintf(
			"<p>Takk for din booking!</p><p>Tidspunkt: %s</p><p>Totalt: %s</p>",
			when, total)
	}
	if p.StylistName != "" {
		body += fmt.Sprintf("<p>Hos %s</p>", p.StylistName)
	}
	return subject, body
}
