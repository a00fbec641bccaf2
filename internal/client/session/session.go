package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gostconsole/internal/client/client"
	"github.com/dmitrijs2005/gostconsole/internal/client/models"
	"github.com/dmitrijs2005/gostconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gostconsole/internal/common"
	"github.com/dmitrijs2005/gostconsole/internal/logging"
)

// API is the part of the HTTP pipeline the session calls.
type API interface {
	Do(ctx context.Context, r *client.Request, out any) error
}

// State is a snapshot handed to observers.
type State struct {
	Token     string
	Profile   *models.UserInfo
	ExpiresAt time.Time
}

func (s State) LoggedIn() bool { return s.Token != "" }

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is safe for concurrent use.
type Session struct {
	store  metadata.Repository
	api    API
	logger logging.Logger

	mu        sync.RWMutex
	token     string
	profile   *models.UserInfo
	expiresAt time.Time
	// stale marks keys in the store that could not be loaded or removed;
	// the next Logout deletes them even when memory is already empty.
	stale bool

	obsMu     sync.Mutex
	observers map[int]func(State)
	nextObs   int
}

var _ client.TokenSource = (*Session)(nil)

// New restores the session mirrored in store. A malformed token or profile
// is treated as absent.
func New(ctx context.Context, store metadata.Repository, api API, opts ...Option) (*Session, error) {
	s := &Session{
		store:     store,
		api:       api,
		logger:    logging.Nop(),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	rawToken, err := store.Get(ctx, common.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if rawToken != nil {
		token := string(rawToken)
		if validToken(token) {
			s.token = token
			s.expiresAt = tokenExpiry(token, 0)
		} else {
			s.stale = true
			s.logger.Warn(ctx, "stored token is malformed, ignoring it")
		}
	}

	rawProfile, err := store.Get(ctx, common.UserInfoKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load user info: %w", err)
	}
	if rawProfile != nil {
		var u models.UserInfo
		if err := json.Unmarshal(rawProfile, &u); err != nil {
			s.stale = true
			s.logger.Warn(ctx, "stored user info is malformed, ignoring it", "error", err)
		} else {
			s.profile = &u
		}
	}

	return s, nil
}

// Token returns the current bearer token, "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns a copy of the signed-in user's profile, or nil.
func (s *Session) Profile() *models.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.profile)
}

func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Username returns the profile's username, or "".
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.Username
}

// ExpiresAt is the token expiry, zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned func removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// Login exchanges credentials for a session. On any failure the previous
// state is kept and the error is returned as is.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (*models.UserInfo, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	var res models.LoginResult
	if err := s.api.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/auth/login", Body: creds}, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, common.ErrEmptyToken
	}
	if !validToken(res.Token) {
		return nil, common.ErrInvalidToken
	}

	var profile []byte
	if res.User != nil {
		b, err := json.Marshal(res.User)
		if err != nil {
			return nil, fmt.Errorf("failed to encode user info: %w", err)
		}
		profile = b
	}

	s.mu.Lock()
	err := s.store.Batch(ctx, func(ctx context.Context, tx metadata.Repository) error {
		if err := tx.Set(ctx, common.TokenKey, []byte(res.Token)); err != nil {
			return err
		}
		if profile == nil {
			return tx.Delete(ctx, common.UserInfoKey)
		}
		return tx.Set(ctx, common.UserInfoKey, profile)
	})
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.token = res.Token
	s.profile = cloneUser(res.User)
	s.expiresAt = tokenExpiry(res.Token, res.ExpireAt)
	s.stale = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info(ctx, "signed in", "username", creds.Username)
	s.publish(snap)
	return cloneUser(res.User), nil
}

// FetchUserInfo reloads the profile. The token is never touched.
func (s *Session) FetchUserInfo(ctx context.Context) (*models.UserInfo, error) {
	sent := s.Token()

	var u models.UserInfo
	if err := s.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/auth/info"}, &u); err != nil {
		return nil, err
	}

	b, err := json.Marshal(&u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user info: %w", err)
	}

	s.mu.Lock()
	if s.token != sent {
		s.mu.Unlock()
		return nil, common.ErrSessionChanged
	}
	if err := s.store.Set(ctx, common.UserInfoKey, b); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to save user info: %w", err)
	}
	s.profile = &u
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return cloneUser(&u), nil
}

// Refresh swaps the token for a fresh one. The profile is kept.
func (s *Session) Refresh(ctx context.Context) error {
	sent := s.Token()
	if sent == "" {
		return common.ErrInvalidToken
	}

	var res models.RefreshResult
	if err := s.api.Do(ctx, &client.Request{Method: http.MethodPost, Path: "/auth/refresh"}, &res); err != nil {
		return err
	}
	if res.Token == "" {
		return common.ErrEmptyToken
	}
	if !validToken(res.Token) {
		return common.ErrInvalidToken
	}

	s.mu.Lock()
	if s.token != sent {
		s.mu.Unlock()
		return common.ErrSessionChanged
	}
	if err := s.store.Set(ctx, common.TokenKey, []byte(res.Token)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.token = res.Token
	s.expiresAt = tokenExpiry(res.Token, res.ExpireAt)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug(ctx, "token refreshed", "expires_at", snap.ExpiresAt)
	s.publish(snap)
	return nil
}

// Logout clears the session and its mirror. Logging out twice is a no-op.
// If the store cannot be cleaned the in-memory session is still cleared
// and the error is returned.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" && s.profile == nil && !s.stale {
		s.mu.Unlock()
		return nil
	}
	err := s.clearLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "signed out")
	return nil
}

// Invalidate clears the session if it still holds token. It reports
// whether anything was cleared; store failures are only logged.
func (s *Session) Invalidate(ctx context.Context, token string) bool {
	s.mu.Lock()
	if s.token == "" || s.token != token {
		s.mu.Unlock()
		return false
	}
	err := s.clearLocked(ctx)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error(ctx, "failed to remove invalidated session from store", "error", err)
	}
	s.publish(snap)
	return true
}

func (s *Session) clearLocked(ctx context.Context) error {
	s.token = ""
	s.profile = nil
	s.expiresAt = time.Time{}

	err := s.store.Batch(ctx, func(ctx context.Context, tx metadata.Repository) error {
		if err := tx.Delete(ctx, common.TokenKey); err != nil {
			return err
		}
		return tx.Delete(ctx, common.UserInfoKey)
	})
	if err != nil {
		s.stale = true
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.stale = false
	return nil
}

func (s *Session) snapshotLocked() State {
	return State{Token: s.token, Profile: cloneUser(s.profile), ExpiresAt: s.expiresAt}
}

func (s *Session) publish(st State) {
	s.obsMu.Lock()
	fns := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func cloneUser(u *models.UserInfo) *models.UserInfo {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// validToken rejects values that cannot be carried in a header as is.
func validToken(t string) bool {
	if !utf8.ValidString(t) {
		return false
	}
	return strings.IndexFunc(t, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

// tokenExpiry prefers the expiry reported by the server and falls back to
// the exp claim of a JWT. The signature is not checked; the server does that.
func tokenExpiry(token string, reported int64) time.Time {
	if reported > 0 {
		return time.Unix(reported, 0)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
