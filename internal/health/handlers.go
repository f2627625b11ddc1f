package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	defaultDBProbeTimeout    = 500 * time.Millisecond
	defaultRedisProbeTimeout = 300 * time.Millisecond
)

// Checker probes the backing dependencies for readiness.
type Checker interface {
	PingDB(ctx context.Context, timeout time.Duration) error
	PingRedis(ctx context.Context, timeout time.Duration) error
}

// Handler serves the liveness and readiness endpoints.
type Handler struct {
	Checker      Checker
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

// Live always answers ok while the process is up.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready probes Postgres and Redis and reports per-dependency status. It
// answers 503 once shutdown has started so load balancers drain traffic.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !IsReady() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	status := map[string]string{"db": "ok", "redis": "ok"}
	if err := h.Checker.PingDB(ctx, orDefault(h.DBTimeout, defaultDBProbeTimeout)); err != nil {
		status["db"] = err.Error()
	}
	if err := h.Checker.PingRedis(ctx, orDefault(h.RedisTimeout, defaultRedisProbeTimeout)); err != nil {
		status["redis"] = err.Error()
	}

	code := http.StatusOK
	for _, s := range status {
		if s != "ok" {
			code = http.StatusServiceUnavailable
			break
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
