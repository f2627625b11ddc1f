package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound indicates no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound indicates no session matches the refresh token.
var ErrSessionNotFound = errors.New("session not found")

// UserRecord is the stored user row.
type UserRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionRecord is a stored refresh session. TokenHash is the sha256 of the
// opaque refresh token; the token itself is never persisted.
type SessionRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Store defines the persistence operations required by the auth service.
type Store interface {
	CreateUser(ctx context.Context, u UserRecord) (UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (UserRecord, error)
	CreateSession(ctx context.Context, s SessionRecord) error
	GetSessionByTokenHash(ctx context.Context, hash string) (SessionRecord, error)
	RotateSession(ctx context.Context, id uuid.UUID, newHash string, expiresAt time.Time) error
	DeleteSessionByTokenHash(ctx context.Context, hash string) error
}

// PGStore persists users and sessions in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// CreateUser inserts a new user row.
func (s PGStore) CreateUser(ctx context.Context, u UserRecord) (UserRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return scanUser(row)
}

// GetUserByEmail loads a user by normalised email.
func (s PGStore) GetUserByEmail(ctx context.Context, email string) (UserRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, err
	}
	return u, nil
}

// GetUserByID loads a user by id.
func (s PGStore) GetUserByID(ctx context.Context, id uuid.UUID) (UserRecord, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, err
	}
	return u, nil
}

// CreateSession stores a refresh session.
func (s PGStore) CreateSession(ctx context.Context, sess SessionRecord) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, token_hash, user_agent, ip, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.ID, sess.UserID, sess.TokenHash, sess.UserAgent, sess.IP, sess.ExpiresAt, sess.CreatedAt)
	return err
}

// GetSessionByTokenHash loads a session by the hashed refresh token.
func (s PGStore) GetSessionByTokenHash(ctx context.Context, hash string) (SessionRecord, error) {
	var sess SessionRecord
	err := s.Pool.QueryRow(ctx, `
		SELECT id, user_id, token_hash, user_agent, ip, expires_at, created_at
		FROM sessions WHERE token_hash = $1`, hash).
		Scan(&sess.ID, &sess.UserID, &sess.TokenHash, &sess.UserAgent, &sess.IP,
			&sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SessionRecord{}, ErrSessionNotFound
		}
		return SessionRecord{}, err
	}
	return sess, nil
}

// RotateSession swaps the token hash on an existing session.
func (s PGStore) RotateSession(ctx context.Context, id uuid.UUID, newHash string, expiresAt time.Time) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE sessions SET token_hash = $2, expires_at = $3 WHERE id = $1`, id, newHash, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSessionByTokenHash revokes a session.
func (s PGStore) DeleteSessionByTokenHash(ctx context.Context, hash string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hash)
	return err
}

func scanUser(row pgx.Row) (UserRecord, error) {
	var u UserRecord
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
