package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the requested catalog entity does not exist.
var ErrNotFound = errors.New("not found")

// Stylist is a bookable service provider.
type Stylist struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Bio    string    `json:"bio,omitempty"`
	City   string    `json:"city"`
	Rating float64   `json:"rating"`
	Active bool      `json:"active"`
}

// BookableService is a single treatment a stylist offers. Price and TrialPrice
// are in øre; TrialPrice is set only when the treatment offers a trial session.
type BookableService struct {
	ID              uuid.UUID `json:"id"`
	StylistID       uuid.UUID `json:"stylistId"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int32     `json:"durationMinutes"`
	Price           int64     `json:"price"`
	TrialPrice      *int64    `json:"trialPrice,omitempty"`
	Active          bool      `json:"active"`
}

// PGStore reads catalog entities from Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// ListStylists returns active stylists, optionally filtered by city.
func (s PGStore) ListStylists(ctx context.Context, city string, limit, offset int32) ([]Stylist, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, slug, bio, city, rating, active
		FROM stylists
		WHERE active AND ($1 = '' OR city ILIKE $1)
		ORDER BY rating DESC, name
		LIMIT $2 OFFSET $3`, city, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stylist
	for rows.Next() {
		var st Stylist
		if err := rows.Scan(&st.ID, &st.Name, &st.Slug, &st.Bio, &st.City, &st.Rating, &st.Active); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetStylistBySlug loads a single stylist.
func (s PGStore) GetStylistBySlug(ctx context.Context, slug string) (Stylist, error) {
	var st Stylist
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, slug, bio, city, rating, active
		FROM stylists WHERE slug = $1 AND active`, slug).
		Scan(&st.ID, &st.Name, &st.Slug, &st.Bio, &st.City, &st.Rating, &st.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stylist{}, ErrNotFound
		}
		return Stylist{}, err
	}
	return st, nil
}

// ListServicesByStylist returns the active treatments a stylist offers.
func (s PGStore) ListServicesByStylist(ctx context.Context, stylistID uuid.UUID) ([]BookableService, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, stylist_id, name, slug, description, duration_minutes, price, trial_price, active
		FROM services
		WHERE stylist_id = $1 AND active
		ORDER BY name`, stylistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookableService
	for rows.Next() {
		var svc BookableService
		if err := rows.Scan(&svc.ID, &svc.StylistID, &svc.Name, &svc.Slug, &svc.Description,
			&svc.DurationMinutes, &svc.Price, &svc.TrialPrice, &svc.Active); err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, rows.Err()
}

// GetService loads a single treatment by id.
func (s PGStore) GetService(ctx context.Context, id uuid.UUID) (BookableService, error) {
	var svc BookableService
	err := s.Pool.QueryRow(ctx, `
		SELECT id, stylist_id, name, slug, description, duration_minutes, price, trial_price, active
		FROM services WHERE id = $1`, id).
		Scan(&svc.ID, &svc.StylistID, &svc.Name, &svc.Slug, &svc.Description,
			&svc.DurationMinutes, &svc.Price, &svc.TrialPrice, &svc.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BookableService{}, ErrNotFound
		}
		return BookableService{}, err
	}
	return svc, nil
}
