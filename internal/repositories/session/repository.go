package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/veranda/pkg/metrics"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

const storageKey = "admin-sessions"

// SessionRepository defines the interface for the admin session gate
type SessionRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	IsAuthenticated(ctx context.Context, token string) bool
}

// Repository checks the static admin credential and hands out opaque session
// tokens. Tokens survive restarts through the storage bridge.
type Repository struct {
	mu       sync.RWMutex
	sessions []models.Session
	username string
	password string
	bridge   *storage.Bridge
	logger   ectologger.Logger
}

// NewRepository loads persisted sessions and returns the repository.
func NewRepository(username, password string, bridge *storage.Bridge, logger ectologger.Logger) *Repository {
	r := &Repository{
		username: username,
		password: password,
		bridge:   bridge,
		logger:   logger,
	}
	bridge.Load(context.Background(), storageKey, &r.sessions)
	return r
}

// Login compares the supplied credential against the configured admin
// credential and mints a session token on match.
func (r *Repository) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	ctx, span := tracing.StartSpan(ctx, "SessionRepository.Login")
	defer span.End()

	if req.Username != r.username || req.Password != r.password {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		r.logger.WithContext(ctx).WithField("username", req.Username).Info("rejected login attempt")
		return nil, httperror.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	session := models.Session{
		Token:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions = append(r.sessions, session)
	r.bridge.Save(ctx, storageKey, r.sessions)
	r.mu.Unlock()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	r.logger.WithContext(ctx).Info("admin logged in")

	return &session, nil
}

// Logout discards the session for the given token. Unknown tokens are a
// no-op so logout is always safe to call.
func (r *Repository) Logout(ctx context.Context, token string) error {
	ctx, span := tracing.StartSpan(ctx, "SessionRepository.Logout")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sessions {
		if r.sessions[i].Token == token {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			r.bridge.Save(ctx, storageKey, r.sessions)
			r.logger.WithContext(ctx).Info("admin logged out")
			break
		}
	}
	return nil
}

// IsAuthenticated reports whether the token belongs to a live session.
func (r *Repository) IsAuthenticated(ctx context.Context, token string) bool {
	_, span := tracing.StartSpan(ctx, "SessionRepository.IsAuthenticated")
	defer span.End()

	if token == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.sessions {
		if r.sessions[i].Token == token {
			return true
		}
	}
	return false
}
