package app

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewValidator returns the request validator shared by HTTP handlers.
func NewValidator() *validator.Validate {
	return validator.New()
}

// NewLimiterStore wires a rate limiter store backed by Redis.
func NewLimiterStore(rdb *redis.Client) (limiter.Store, error) {
	return limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "glowbook:ratelimit",
	})
}

// NewRateLimiter builds a limiter from a rate string such as "20-M".
func NewRateLimiter(store limiter.Store, rateSpec string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(rateSpec)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rateSpec, err)
	}
	return limiter.New(store, rate), nil
}

// RunMigrations applies pending migrations from the given path against the database.
func RunMigrations(sourcePath, databaseURL string) error {
	m, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// AsynqRedisOpt converts a Redis URL into asynq connection options.
func AsynqRedisOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	}, nil
}
