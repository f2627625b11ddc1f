package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memAuthStore struct {
	usersByEmail map[string]UserRecord
	usersByID    map[uuid.UUID]UserRecord
	sessions     map[string]SessionRecord
}

func newMemAuthStore() *memAuthStore {
	return &memAuthStore{
		usersByEmail: map[string]UserRecord{},
		usersByID:    map[uuid.UUID]UserRecord{},
		sessions:     map[string]SessionRecord{},
	}
}

func (s *memAuthStore) CreateUser(_ context.Context, u UserRecord) (UserRecord, error) {
	s.usersByEmail[u.Email] = u
	s.usersByID[u.ID] = u
	return u, nil
}

func (s *memAuthStore) GetUserByEmail(_ context.Context, email string) (UserRecord, error) {
	u, ok := s.usersByEmail[email]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return u, nil
}

func (s *memAuthStore) GetUserByID(_ context.Context, id uuid.UUID) (UserRecord, error) {
	u, ok := s.usersByID[id]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return u, nil
}

func (s *memAuthStore) CreateSession(_ context.Context, sess SessionRecord) error {
	s.sessions[sess.TokenHash] = sess
	return nil
}

func (s *memAuthStore) GetSessionByTokenHash(_ context.Context, hash string) (SessionRecord, error) {
	sess, ok := s.sessions[hash]
	if !ok {
		return SessionRecord{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *memAuthStore) RotateSession(_ context.Context, id uuid.UUID, newHash string, expiresAt time.Time) error {
	for hash, sess := range s.sessions {
		if sess.ID == id {
			delete(s.sessions, hash)
			sess.TokenHash = newHash
			sess.ExpiresAt = expiresAt
			s.sessions[newHash] = sess
			return nil
		}
	}
	return ErrSessionNotFound
}

func (s *memAuthStore) DeleteSessionByTokenHash(_ context.Context, hash string) error {
	delete(s.sessions, hash)
	return nil
}

func newAuthService(t *testing.T) (*Service, *memAuthStore) {
	t.Helper()
	store := newMemAuthStore()
	svc, err := NewService(Config{
		Store:           store,
		Secret:          "test-secret-test-secret-test-sec",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "backend-glowbook",
		Audience:        "glowbook-frontend",
		ClockSkew:       time.Second,
	})
	require.NoError(t, err)
	return svc, store
}

func TestRegisterLoginAndParseToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Kari Nordmann", "KARI@Example.no", "passord123")
	require.NoError(t, err)
	require.Equal(t, "kari@example.no", user.Email)

	result, err := svc.Login(ctx, "kari@example.no", "passord123", "test-agent", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	subject, err := svc.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Kari", "kari@example.no", "passord123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "kari@example.no", "feil-passord", "", "")
	require.Error(t, err)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "Kari", "kari@example.no", "kort")
	require.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Kari", "kari@example.no", "passord123")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "kari@example.no", "passord123", "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is no longer usable after rotation.
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	require.Len(t, store.sessions, 1)
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Kari", "kari@example.no", "passord123")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "kari@example.no", "passord123", "", "")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Now().Add(48 * time.Hour) })
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Kari", "kari@example.no", "passord123")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "kari@example.no", "passord123", "", "")
	require.NoError(t, err)

	svc.WithNow(func() time.Time { return time.Now().Add(time.Hour) })
	_, err = svc.ParseAccessToken(login.AccessToken)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ParseAccessToken("not-a-token")
	require.Error(t, err)

	_, err = svc.ParseAccessToken("")
	require.Error(t, err)
}

func TestEmailByID(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Kari", "kari@example.no", "passord123")
	require.NoError(t, err)

	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	email, err := svc.EmailByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "kari@example.no", email)
}
