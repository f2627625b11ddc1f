package health_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/glowbook/backend-glowbook/internal/health"
)

type okChecker struct{}

func (okChecker) PingDB(context.Context, time.Duration) error    { return nil }
func (okChecker) PingRedis(context.Context, time.Duration) error { return nil }

func TestReadyDrainsDuringShutdown(t *testing.T) {
	t.Cleanup(func() { health.SetReady(true) })

	handler := health.Handler{Checker: okChecker{}}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)

	health.SetReady(true)
	before := httptest.NewRecorder()
	handler.Ready(before, req)
	require.Equal(t, http.StatusOK, before.Code)

	health.SetReady(false)
	after := httptest.NewRecorder()
	handler.Ready(after, req)
	require.Equal(t, http.StatusServiceUnavailable, after.Code)
	require.Contains(t, after.Body.String(), "shutting down")
}
