package discount

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists discount codes in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

const discountColumns = `id, code, description, percent, amount, max_order_amount, valid_from, valid_to, active, created_at, updated_at`

// GetByCode loads a discount by its (upper-cased) code.
func (s PGStore) GetByCode(ctx context.Context, code string) (Record, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT `+discountColumns+` FROM discounts WHERE code = $1`, code)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Insert stores a new discount record.
func (s PGStore) Insert(ctx context.Context, rec Record) (Record, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO discounts (id, code, description, percent, amount, max_order_amount, valid_from, valid_to, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+discountColumns,
		rec.ID, rec.Code, rec.Description, rec.Percent, rec.Amount, rec.MaxOrderAmount,
		rec.ValidFrom, rec.ValidTo, rec.Active, rec.CreatedAt, rec.UpdatedAt)
	return scanRecord(row)
}

// Update overwrites an existing discount record.
func (s PGStore) Update(ctx context.Context, rec Record) (Record, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE discounts
		SET description = $2, percent = $3, amount = $4, max_order_amount = $5,
		    valid_from = $6, valid_to = $7, active = $8, updated_at = $9
		WHERE code = $1
		RETURNING `+discountColumns,
		rec.Code, rec.Description, rec.Percent, rec.Amount, rec.MaxOrderAmount,
		rec.ValidFrom, rec.ValidTo, rec.Active, rec.UpdatedAt)
	updated, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return updated, nil
}

// List returns discount records ordered by creation time, newest first.
func (s PGStore) List(ctx context.Context, limit, offset int32) ([]Record, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+discountColumns+` FROM discounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.Code, &rec.Description, &rec.Percent, &rec.Amount,
		&rec.MaxOrderAmount, &rec.ValidFrom, &rec.ValidTo, &rec.Active,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
