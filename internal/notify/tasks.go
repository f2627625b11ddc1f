package notify

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskBookingEmail is the asynq task type for booking lifecycle emails.
const TaskBookingEmail = "email:booking"

// BookingEmailPayload is the task payload carried between the API and the worker.
type BookingEmailPayload struct {
	Topic         string    `json:"topic"`
	BookingID     string    `json:"bookingId"`
	CustomerEmail string    `json:"customerEmail"`
	StylistName   string    `json:"stylistName,omitempty"`
	StartsAt      time.Time `json:"startsAt"`
	Total         int64     `json:"total"`
}

// NewBookingEmailTask builds the asynq task for a booking email.
func NewBookingEmailTask(p BookingEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingEmail, data,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}
