package sessions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/photoshare/backend/internal/logger"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "session_token"

var (
	// ErrNoSession is returned when the request carries no session token.
	ErrNoSession = errors.New("session token missing")

	// ErrSessionNotFound is returned when a token does not resolve to a
	// live session (expired, destroyed, or never issued).
	ErrSessionNotFound = errors.New("session not found")
)

// Store keeps session bindings in Redis, keyed by an opaque token issued
// to the client. Session state lives outside the entity store and has
// its own lifecycle.
type Store struct {
	client *redis.Client
	exp    time.Duration // session TTL
}

// New creates a session store with the given TTL.
func New(client *redis.Client, expiration time.Duration) *Store {
	return &Store{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create binds a fresh opaque token to the user id and returns the token.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	err := s.client.Set(ctx, sessionKey(token), userID.String(), s.exp).Err()

	logger.Log.Infow("session create",
		"user_id", userID,
		"error", err,
	)

	if err != nil {
		return "", err
	}
	return token, nil
}

// GetUserID resolves a token to the authenticated user id.
func (s *Store) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		logger.Log.Errorw("session lookup failed", "error", err)
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

// Destroy removes the session binding. Destroying an absent session
// succeeds silently, so logout is idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	err := s.client.Del(ctx, sessionKey(token)).Err()

	logger.Log.Infow("session destroy",
		"error", err,
	)

	return err
}

// GetTokenFromRequest extracts the session token from the request cookie.
func (s *Store) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}
	return cookie.Value, nil
}

// SetCookie writes the session cookie on the response.
func (s *Store) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.exp.Seconds()),
	})
}

// ClearCookie expires the session cookie on the response.
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
