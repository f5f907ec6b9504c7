// Package session implements the server-side session store: the browser
// cookie carries only a random session ID, the sanitized user record
// lives in Redis under that ID.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TemaXo00/musium-web-application/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no active session")

const keyPrefix = "session:"

// Store manages sessions in Redis.
type Store struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
}

// NewStore creates a session store.
func NewStore(client *redis.Client, cookieName string, ttl time.Duration) *Store {
	return &Store{client: client, cookieName: cookieName, ttl: ttl}
}

// Create starts a session for the user and sets the cookie.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, user *model.PublicUser) error {
	id := uuid.NewString()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get returns the session user for the request, or ErrNoSession.
func (s *Store) Get(ctx context.Context, r *http.Request) (*model.PublicUser, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	data, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	user := &model.PublicUser{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return user, nil
}

// Refresh overwrites the stored user record, keeping the TTL window.
func (s *Store) Refresh(ctx context.Context, r *http.Request, user *model.PublicUser) error {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return ErrNoSession
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+cookie.Value, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return nil
}

// Destroy deletes the session and expires the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+cookie.Value).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
