package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Store persists carts as JSON documents in Redis. Writes are last-write-wins;
// concurrent updates to the same customer's cart do not merge.
type Store struct {
	R      *redis.Client
	Prefix string
	TTL    time.Duration
}

func (s Store) key(customerID string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "glowbook:cart"
	}
	return prefix + ":" + customerID
}

func (s Store) ttl() time.Duration {
	if s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

// Load fetches the customer's cart. A missing key yields ErrNotFound.
func (s Store) Load(ctx context.Context, customerID string) (Cart, error) {
	if s.R == nil {
		return Cart{}, errors.New("cart store not configured")
	}
	data, err := s.R.Get(ctx, s.key(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Save writes the cart and refreshes its TTL.
func (s Store) Save(ctx context.Context, c Cart) error {
	if s.R == nil {
		return errors.New("cart store not configured")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, s.key(c.CustomerID), data, s.ttl()).Err()
}

// Delete removes the customer's cart entirely.
func (s Store) Delete(ctx context.Context, customerID string) error {
	if s.R == nil {
		return errors.New("cart store not configured")
	}
	return s.R.Del(ctx, s.key(customerID)).Err()
}
