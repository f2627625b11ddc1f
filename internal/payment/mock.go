package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Mock synthesises deterministic intents without a network call. Used in
// development and tests to drive the checkout flow end to end.
type Mock struct {
	FailNext bool
}

// CreateIntent returns a deterministic intent derived from the booking id.
func (m *Mock) CreateIntent(_ context.Context, req IntentRequest) (Intent, error) {
	if m != nil && m.FailNext {
		m.FailNext = false
		return Intent{}, errors.New("mock provider failure")
	}
	if strings.TrimSpace(req.BookingID) == "" {
		return Intent{}, errors.New("booking id is required")
	}
	return Intent{
		Provider:    "mock",
		Reference:   "MOCK-" + req.BookingID,
		RedirectURL: fmt.Sprintf("https://pay.example.test/intent/MOCK-%s", req.BookingID),
	}, nil
}
