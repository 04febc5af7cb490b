package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionLoginValidateLogout(t *testing.T) {
	cache := newTestRedis(t)
	svc := NewSessionService(cache, "test-secret", time.Hour, "admin123", "", zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	token, err := svc.Login(ctx, "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Validate(ctx, token)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionValidateRejectsBadTokens(t *testing.T) {
	cache := newTestRedis(t)
	svc := NewSessionService(cache, "test-secret", time.Hour, "admin123", "", zerolog.Nop())
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt"} {
		_, err := svc.Validate(ctx, token)
		require.ErrorIs(t, err, ErrSessionInvalid)
	}

	// A token signed with another secret must not validate.
	other := NewSessionService(cache, "other-secret", time.Hour, "admin123", "", zerolog.Nop())
	token, err := other.Login(ctx, "admin123")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, token)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionPasswordHashTakesPrecedence(t *testing.T) {
	cache := newTestRedis(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewSessionService(cache, "test-secret", time.Hour, "plain-pass", string(hash), zerolog.Nop())
	ctx := context.Background()

	_, err = svc.Login(ctx, "plain-pass")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login(ctx, "hashed-pass")
	require.NoError(t, err)
}
