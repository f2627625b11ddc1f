package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, customer_id, stylist_id, starts_at, duration_minutes, status,
	discount_code, discount_amount, trial_amount, subtotal, total, created_at, updated_at, cancelled_at`

// PGStore persists bookings in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// CreateWithItems inserts a booking and its lines in one transaction.
func (s PGStore) CreateWithItems(ctx context.Context, b Booking, items []Item) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, customer_id, stylist_id, starts_at, duration_minutes, status,
			discount_code, discount_amount, trial_amount, subtotal, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.CustomerID, b.StylistID, b.StartsAt, b.DurationMin, b.Status,
		b.DiscountCode, b.DiscountAmount, b.TrialAmount, b.Subtotal, b.Total,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return err
	}
	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_items (id, booking_id, service_id, service_name, unit_price, qty, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.BookingID, it.ServiceID, it.ServiceName, it.UnitPrice, it.Qty, it.Subtotal)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetForCustomer loads a booking owned by the customer.
func (s PGStore) GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (Booking, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND customer_id = $2`, id, customerID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return b, nil
}

// ListByCustomer returns the customer's bookings, newest first.
func (s PGStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]Booking, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_id = $1
		 ORDER BY starts_at DESC LIMIT $2 OFFSET $3`, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListItems returns the service lines for a booking.
func (s PGStore) ListItems(ctx context.Context, bookingID uuid.UUID) ([]Item, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, booking_id, service_id, service_name, unit_price, qty, subtotal
		FROM booking_items WHERE booking_id = $1`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.BookingID, &it.ServiceID, &it.ServiceName,
			&it.UnitPrice, &it.Qty, &it.Subtotal); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListActiveByStylistBetween returns the stylist's pending and confirmed
// bookings starting inside [from, to). The overlap check runs against these.
func (s PGStore) ListActiveByStylistBetween(ctx context.Context, stylistID uuid.UUID, from, to time.Time) ([]Booking, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE stylist_id = $1 AND status IN ($2, $3) AND starts_at >= $4 AND starts_at < $5`,
		stylistID, StatusPending, StatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus sets the booking status, stamping cancellation time when the
// new status is cancelled.
func (s PGStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	var cancelledAt *time.Time
	if status == StatusCancelled {
		cancelledAt = &at
	}
	tag, err := s.Pool.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = $3, cancelled_at = COALESCE($4, cancelled_at)
		WHERE id = $1`, id, status, at, cancelledAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStartsAt moves the booking to a new start time.
func (s PGStore) UpdateStartsAt(ctx context.Context, id uuid.UUID, startsAt, updatedAt time.Time) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE bookings SET starts_at = $2, updated_at = $3 WHERE id = $1`, id, startsAt, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.StylistID, &b.StartsAt, &b.DurationMin, &b.Status,
		&b.DiscountCode, &b.DiscountAmount, &b.TrialAmount, &b.Subtotal, &b.Total,
		&b.CreatedAt, &b.UpdatedAt, &b.CancelledAt,
	)
	return b, err
}
