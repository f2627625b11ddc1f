package events

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists domain events in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// Insert appends the event to the domain_events table.
func (s PGStore) Insert(ctx context.Context, ev Event) (Event, error) {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO domain_events (id, topic, aggregate_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.Topic, ev.AggregateID, ev.Payload, ev.OccurredAt)
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}
