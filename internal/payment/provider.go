package payment

import (
	"context"
	"errors"

	"github.com/glowbook/backend-glowbook/internal/obs"
)

// ErrProviderUnavailable is returned when the upstream provider cannot be reached.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// IntentRequest captures what is needed to open a payment intent for a booking.
type IntentRequest struct {
	BookingID   string
	Amount      int64
	Currency    string
	Description string
	ReturnURL   string
}

// Intent is the minimal provider response the checkout flow needs.
type Intent struct {
	Provider    string `json:"provider"`
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirectUrl"`
}

// Provider abstracts the upstream payment service used at checkout.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
}

func countIntent(provider, result string) {
	if obs.PaymentIntentTotal != nil {
		obs.PaymentIntentTotal.WithLabelValues(provider, result).Inc()
	}
}
