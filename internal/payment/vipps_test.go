package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glowbook/backend-glowbook/internal/resilience"
)

func newVipps(baseURL string) Vipps {
	return Vipps{
		Client: resilience.HTTPClient{
			Client:      &http.Client{},
			BaseBackoff: time.Millisecond,
			MaxAttempts: 3,
		},
		BaseURL: baseURL,
		APIKey:  "test-key",
	}
}

func TestVippsCreateIntent(t *testing.T) {
	var gotAuth, gotIdem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "NOK", req["currency"])
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"reference":   "bk-1",
			"redirectUrl": "https://pay.vipps.no/redirect/abc",
		})
	}))
	t.Cleanup(srv.Close)

	intent, err := newVipps(srv.URL).CreateIntent(context.Background(), IntentRequest{
		BookingID: "bk-1",
		Amount:    55_000,
	})
	require.NoError(t, err)
	require.Equal(t, "vipps", intent.Provider)
	require.Equal(t, "bk-1", intent.Reference)
	require.Equal(t, "https://pay.vipps.no/redirect/abc", intent.RedirectURL)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "bk-1", gotIdem)
}

func TestVippsCreateIntentRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"reference":   "bk-2",
			"redirectUrl": "https://pay.vipps.no/redirect/xyz",
		})
	}))
	t.Cleanup(srv.Close)

	intent, err := newVipps(srv.URL).CreateIntent(context.Background(), IntentRequest{
		BookingID: "bk-2",
		Amount:    10_000,
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, "bk-2", intent.Reference)
}

func TestVippsCreateIntentRejectsBadInput(t *testing.T) {
	v := newVipps("http://unused.test")

	_, err := v.CreateIntent(context.Background(), IntentRequest{Amount: 1000})
	require.Error(t, err)

	_, err = v.CreateIntent(context.Background(), IntentRequest{BookingID: "bk-3"})
	require.Error(t, err)
}

func TestMockCreateIntent(t *testing.T) {
	m := &Mock{}
	intent, err := m.CreateIntent(context.Background(), IntentRequest{BookingID: "bk-9", Amount: 100})
	require.NoError(t, err)
	require.Equal(t, "MOCK-bk-9", intent.Reference)
}
