package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/glowbook/backend-glowbook/internal/resilience"
)

// Vipps creates payment intents against a Vipps ePayment style API. Calls go
// through the resilient HTTP client so transient upstream failures are retried
// and a tripped breaker fails fast.
type Vipps struct {
	Client  resilience.HTTPClient
	BaseURL string
	APIKey  string
}

type vippsCreateRequest struct {
	Reference     string `json:"reference"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"paymentDescription"`
	ReturnURL     string `json:"returnUrl"`
	UserFlow      string `json:"userFlow"`
	PaymentMethod string `json:"paymentMethod"`
}

type vippsCreateResponse struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirectUrl"`
}

// CreateIntent opens a payment with the provider and returns the redirect URL
// the customer completes the payment at.
func (v Vipps) CreateIntent(ctx context.Context, req IntentRequest) (Intent, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return Intent{}, errors.New("booking id is required")
	}
	if req.Amount <= 0 {
		return Intent{}, errors.New("amount must be positive")
	}
	currency := req.Currency
	if currency == "" {
		currency = "NOK"
	}

	payload, err := json.Marshal(vippsCreateRequest{
		Reference:     req.BookingID,
		Amount:        req.Amount,
		Currency:      currency,
		Description:   req.Description,
		ReturnURL:     req.ReturnURL,
		UserFlow:      "WEB_REDIRECT",
		PaymentMethod: "WALLET",
	})
	if err != nil {
		return Intent{}, err
	}

	url := strings.TrimRight(v.BaseURL, "/") + "/epayment/v1/payments"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Intent{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+v.APIKey)
	httpReq.Header.Set("Idempotency-Key", req.BookingID)

	resp, err := v.Client.Do(ctx, httpReq)
	if err != nil {
		countIntent("vipps", "unavailable")
		if errors.Is(err, resilience.ErrOpenCircuit) {
			return Intent{}, fmt.Errorf("%w: circuit open", ErrProviderUnavailable)
		}
		return Intent{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		countIntent("vipps", "rejected")
		return Intent{}, fmt.Errorf("%w: unexpected status %s", ErrProviderUnavailable, resp.Status)
	}

	var body vippsCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		countIntent("vipps", "rejected")
		return Intent{}, err
	}
	if body.RedirectURL == "" {
		countIntent("vipps", "rejected")
		return Intent{}, errors.New("provider response missing redirect url")
	}
	countIntent("vipps", "created")
	return Intent{
		Provider:    "vipps",
		Reference:   body.Reference,
		RedirectURL: body.RedirectURL,
	}, nil
}
