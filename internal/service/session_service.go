package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword indicates the submitted admin password did not match.
var ErrInvalidPassword = errors.New("invalid password")

// ErrSessionInvalid indicates the session token is missing, malformed,
// expired, or no longer backed by a stored session.
var ErrSessionInvalid = errors.New("session invalid or expired")

// Session is the server-side record backing one admin login.
type Session struct {
	ID        string    `json:"id"`
	LoginTime time.Time `json:"login_time"`
}

// SessionService manages admin authentication: password verification,
// Redis-backed session records, and the signed token carried by the cookie.
type SessionService interface {
	Login(ctx context.Context, password string) (string, error)
	// Validate parses the cookie token and confirms the backing session still
	// exists, returning the session identifier.
	Validate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

type sessionService struct {
	cache        *redis.Client
	secret       []byte
	ttl          time.Duration
	password     string
	passwordHash string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewSessionService constructs the session service. When a bcrypt hash is
// configured it takes precedence over the plain password fallback.
func NewSessionService(cache *redis.Client, secret string, ttl time.Duration, password, passwordHash string, logger zerolog.Logger) SessionService {
	return &sessionService{
		cache:        cache,
		secret:       []byte(secret),
		ttl:          ttl,
		password:     password,
		passwordHash: passwordHash,
		logger:       logger.With().Str("component", "session_service").Logger(),
		now:          time.Now,
	}
}

func sessionCacheKey(id string) string {
	return "session:" + id
}

func (s *sessionService) TTL() time.Duration {
	return s.ttl
}

func (s *sessionService) Login(ctx context.Context, password string) (string, error) {
	if !s.verifyPassword(password) {
		return "", ErrInvalidPassword
	}

	session := Session{ID: uuid.NewString(), LoginTime: s.now()}
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, sessionCacheKey(session.ID), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": session.ID,
		"iat": jwt.NewNumericDate(s.now()),
		"exp": jwt.NewNumericDate(s.now().Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("session_id", session.ID).Msg("admin logged in")

	return token, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (string, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return "", ErrSessionInvalid
	}

	if err := s.cache.Get(ctx, sessionCacheKey(sessionID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionInvalid
		}
		return "", err
	}

	return sessionID, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil
	}

	if err := s.cache.Del(ctx, sessionCacheKey(sessionID)).Err(); err != nil {
		return err
	}

	s.logger.Info().Str("session_id", sessionID).Msg("admin logged out")

	return nil
}

func (s *sessionService) parseToken(token string) (string, error) {
	if token == "" {
		return "", ErrSessionInvalid
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrSessionInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrSessionInvalid
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", ErrSessionInvalid
	}

	return sessionID, nil
}

func (s *sessionService) verifyPassword(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}
