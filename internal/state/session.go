package state

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/storage"
	"github.com/dentabook/booking-client/pkg/auth"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// SessionState holds the authenticated user. Token presence is the
// sole authority for being logged in; restoring a persisted
// {user, token} pair transitions straight to logged-in without a
// server round-trip.
type SessionState struct {
	mu       sync.Mutex
	api      *api.Client
	mirror   *mirror
	log      *logger.Logger
	validate *validator.Validate
	tracker  *Tracker

	user  *model.User
	token string
}

func NewSessionState(client *api.Client, store storage.Store, log *logger.Logger, m *metrics.Metrics) *SessionState {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionState{
		api:      client,
		mirror:   newMirror(store, log, m),
		log:      log.WithComponent("session"),
		validate: newValidator(),
		tracker:  NewTracker("auth", m),
	}
}

// Login validates the form client-side, then authenticates. Validation
// failures surface before any network call. Server failures carry the
// backend's message verbatim when it sent one.
func (s *SessionState) Login(ctx context.Context, email, password string) error {
	req := &model.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return translate(err)
	}

	gen := s.tracker.Begin()
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.tracker.Reject(gen, messageOf(err))
		return err
	}
	if !s.tracker.Fulfill(gen) {
		return nil
	}

	s.establish(resp)
	s.log.Info("logged in", "email", resp.User.Email)
	return nil
}

// Signup registers an account; on success the session is established
// exactly as after login.
func (s *SessionState) Signup(ctx context.Context, name, email, phone, password string) error {
	req := &model.SignupRequest{Name: name, Email: email, Phone: phone, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return translate(err)
	}

	gen := s.tracker.Begin()
	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		s.tracker.Reject(gen, messageOf(err))
		return err
	}
	if !s.tracker.Fulfill(gen) {
		return nil
	}

	s.establish(resp)
	s.log.Info("signed up", "email", resp.User.Email)
	return nil
}

func (s *SessionState) establish(resp *model.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := resp.User
	s.user = &user
	s.token = resp.Token
	s.mirror.setJSON(storage.KeyUser, user)
	s.mirror.setString(storage.KeyToken, resp.Token)
}

// Restore loads a persisted session on process start. Both user and
// token must be present; anything less leaves the state logged out.
func (s *SessionState) Restore(ctx context.Context) bool {
	rawUser, okUser := s.mirror.get(ctx, storage.KeyUser)
	token, okToken := s.mirror.get(ctx, storage.KeyToken)
	if !okUser || !okToken || token == "" {
		return false
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn(err, "stored user is corrupt, ignoring")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	s.log.Info("session restored", "email", user.Email)
	return true
}

// Logout clears the session and its persisted mirror.
func (s *SessionState) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.mirror.remove(storage.KeyUser, storage.KeyToken)
	s.log.Info("logged out")
}

// CheckExpiry drops the session when the held token has expired.
// Returns true when a logout happened.
func (s *SessionState) CheckExpiry(now time.Time) bool {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" || !auth.IsExpired(token, now) {
		return false
	}
	s.Logout()
	return true
}

// IsAuthenticated is true exactly when a token is held.
func (s *SessionState) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Identity returns the current user and token for request signing.
func (s *SessionState) Identity() (*model.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.token
}

func (s *SessionState) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *SessionState) Loading() bool { return s.tracker.Loading() }
func (s *SessionState) Err() string   { return s.tracker.Err() }
