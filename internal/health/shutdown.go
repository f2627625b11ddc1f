package health

import "sync/atomic"

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the readiness gate. The server calls SetReady(false) when
// graceful shutdown starts so load balancers stop routing new traffic.
func SetReady(v bool) {
	ready.Store(v)
}

// IsReady reports whether the process accepts new work.
func IsReady() bool {
	return ready.Load()
}
