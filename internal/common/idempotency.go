package common

import (
	"context"
	"net/http"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const idemKeyPrefix = "glowbook:idem:"

// Idem rejects replays of write requests that carry the same Idempotency-Key
// header within the TTL window. Requests without the header pass through.
type Idem struct {
	R   *redis.Client
	TTL time.Duration
}

func (i Idem) redisKey(header string) string {
	return idemKeyPrefix + Sha256Hex(header)
}

func (i Idem) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Idempotency-Key")
		if header == "" || i.R == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := i.redisKey(header)
		acquired, err := i.R.SetNX(r.Context(), key, "locked", i.TTL).Result()
		if err != nil {
			JSONError(w, http.StatusInternalServerError, "INTERNAL", "idempotency store error", nil)
			return
		}
		if !acquired {
			JSONError(w, http.StatusConflict, "IDEMPOTENT_REPLAY", "duplicate request", nil)
			return
		}
		// refresh the TTL even when the handler panics mid-flight
		defer func() {
			_ = i.R.Expire(context.Background(), key, i.TTL).Err()
		}()
		next.ServeHTTP(w, r)
	})
}
