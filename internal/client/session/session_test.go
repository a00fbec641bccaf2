package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gostconsole/internal/client/client"
	"github.com/dmitrijs2005/gostconsole/internal/client/models"
	"github.com/dmitrijs2005/gostconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gostconsole/internal/common"
)

type apiFunc func(ctx context.Context, r *client.Request, out any) error

func (f apiFunc) Do(ctx context.Context, r *client.Request, out any) error { return f(ctx, r, out) }

// respond fills out the way the pipeline does: JSON in, JSON out.
func respond(out any, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func loginAPI(token string, user *models.UserInfo) apiFunc {
	return func(_ context.Context, r *client.Request, out any) error {
		switch r.Path {
		case "/auth/login":
			return respond(out, models.LoginResult{Token: token, User: user})
		case "/auth/info":
			return respond(out, user)
		}
		return errors.New("unexpected path " + r.Path)
	}
}

// countingRepo counts writes and can be told to fail them.
type countingRepo struct {
	metadata.Repository
	writes atomic.Int32
	fail   atomic.Bool
}

var errStoreDown = errors.New("store down")

func (c *countingRepo) Set(ctx context.Context, key string, value []byte) error {
	c.writes.Add(1)
	if c.fail.Load() {
		return errStoreDown
	}
	return c.Repository.Set(ctx, key, value)
}

func (c *countingRepo) Batch(ctx context.Context, fn func(ctx context.Context, tx metadata.Repository) error) error {
	c.writes.Add(1)
	if c.fail.Load() {
		return errStoreDown
	}
	return c.Repository.Batch(ctx, fn)
}

func newRepo() *countingRepo {
	return &countingRepo{Repository: metadata.NewMemoryRepository()}
}

func get(t *testing.T, repo metadata.Repository, key string) []byte {
	t.Helper()
	v, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

var admin = &models.UserInfo{ID: 1, Username: "admin", Role: "admin"}

func TestNew_RestoresMirror(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.TokenKey, []byte("T1")))
	require.NoError(t, repo.Set(ctx, common.UserInfoKey, []byte(`{"id":1,"username":"admin","role":"admin"}`)))

	s, err := New(ctx, repo, loginAPI("", nil))
	require.NoError(t, err)

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "T1", s.Token())
	assert.Equal(t, admin, s.Profile())
	assert.Equal(t, "admin", s.Username())
}

func TestNew_MalformedProfileIsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.UserInfoKey, []byte(`{not json`)))

	s, err := New(ctx, repo, loginAPI("", nil))
	require.NoError(t, err)

	assert.Nil(t, s.Profile())
	assert.Equal(t, "", s.Username())
	assert.False(t, s.IsLoggedIn())

	// the broken key is still cleaned up by a logout
	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, get(t, repo, common.UserInfoKey))
}

func TestNew_MalformedTokenIsAbsent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.TokenKey, []byte("bad token\n")))

	s, err := New(ctx, repo, loginAPI("", nil))
	require.NoError(t, err)
	assert.False(t, s.IsLoggedIn())

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, get(t, repo, common.TokenKey))
}

func TestLogin_PersistsPairBeforeReturning(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	s, err := New(ctx, repo, loginAPI("T1", admin))
	require.NoError(t, err)

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })

	u, err := s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, admin, u)

	assert.Equal(t, "T1", string(get(t, repo, common.TokenKey)))
	var stored models.UserInfo
	require.NoError(t, json.Unmarshal(get(t, repo, common.UserInfoKey), &stored))
	assert.Equal(t, *admin, stored)

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "admin", s.Username())
	require.Len(t, seen, 1)
	assert.True(t, seen[0].LoggedIn())
	assert.Equal(t, "admin", seen[0].Profile.Username)
}

func TestLogin_SendsCredentials(t *testing.T) {
	var got *client.Request
	api := apiFunc(func(_ context.Context, r *client.Request, out any) error {
		got = r
		return respond(out, models.LoginResult{Token: "T1", User: admin})
	})
	s, err := New(context.Background(), newRepo(), api)
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/auth/login", got.Path)
	assert.Equal(t, models.Credentials{Username: "admin", Password: "secret"}, got.Body)
}

func TestLogin_ExpiryFromJWTClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		Subject:   "admin",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	s, err := New(context.Background(), newRepo(), loginAPI(token, admin))
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, exp.Equal(s.ExpiresAt()))
}

func TestLogin_ReportedExpiryWins(t *testing.T) {
	api := apiFunc(func(_ context.Context, _ *client.Request, out any) error {
		return respond(out, models.LoginResult{Token: "opaque", ExpireAt: 1700000000, User: admin})
	})
	s, err := New(context.Background(), newRepo(), api)
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), s.ExpiresAt().Unix())
}

func TestLogin_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.TokenKey, []byte("OLD")))

	apiErr := &client.Error{Kind: client.KindBusiness, Message: "wrong password", Code: 40000}
	api := apiFunc(func(context.Context, *client.Request, any) error { return apiErr })

	s, err := New(ctx, repo, api)
	require.NoError(t, err)

	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "nope"})
	assert.Same(t, apiErr, err)
	assert.Equal(t, "OLD", s.Token())
	assert.Equal(t, "OLD", string(get(t, repo, common.TokenKey)))
}

func TestLogin_ValidatesBeforeCalling(t *testing.T) {
	var called bool
	api := apiFunc(func(context.Context, *client.Request, any) error {
		called = true
		return nil
	})
	s, err := New(context.Background(), newRepo(), api)
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestLogin_EmptyToken(t *testing.T) {
	repo := newRepo()
	s, err := New(context.Background(), repo, loginAPI("", admin))
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin", Password: "secret"})
	require.ErrorIs(t, err, common.ErrEmptyToken)
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, int32(0), repo.writes.Load())
}

func TestLogin_StoreFailureLeavesMemory(t *testing.T) {
	repo := newRepo()
	repo.fail.Store(true)
	s, err := New(context.Background(), repo, loginAPI("T1", admin))
	require.NoError(t, err)

	_, err = s.Login(context.Background(), models.Credentials{Username: "admin", Password: "secret"})
	require.ErrorIs(t, err, errStoreDown)
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.Profile())
}

func TestLogin_WithoutUserDropsOldProfile(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.UserInfoKey, []byte(`{"id":9,"username":"old"}`)))

	s, err := New(ctx, repo, loginAPI("T1", nil))
	require.NoError(t, err)

	u, err := s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, s.Profile())
	assert.Nil(t, get(t, repo, common.UserInfoKey))
}

func TestFetchUserInfo_KeepsToken(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	fresh := &models.UserInfo{ID: 1, Username: "admin", Role: "admin", Email: "a@example.com"}

	s, err := New(ctx, repo, loginAPI("T1", fresh))
	require.NoError(t, err)
	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	u, err := s.FetchUserInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, u)
	assert.Equal(t, "T1", s.Token())
	assert.Equal(t, "T1", string(get(t, repo, common.TokenKey)))
	assert.Contains(t, string(get(t, repo, common.UserInfoKey)), "a@example.com")
}

func TestFetchUserInfo_SessionChangedInFlight(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.TokenKey, []byte("T1")))

	var s *Session
	api := apiFunc(func(ctx context.Context, _ *client.Request, out any) error {
		s.Invalidate(ctx, "T1")
		return respond(out, admin)
	})
	s, err := New(ctx, repo, api)
	require.NoError(t, err)

	_, err = s.FetchUserInfo(ctx)
	require.ErrorIs(t, err, common.ErrSessionChanged)
	assert.Nil(t, s.Profile())
	assert.Nil(t, get(t, repo, common.UserInfoKey))
}

func TestFetchUserInfo_FailureKeepsProfile(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	require.NoError(t, repo.Set(ctx, common.TokenKey, []byte("T1")))
	require.NoError(t, repo.Set(ctx, common.UserInfoKey, []byte(`{"id":1,"username":"admin","role":"admin"}`)))

	api := apiFunc(func(context.Context, *client.Request, any) error { return client.ErrUnavailable })
	s, err := New(ctx, repo, api)
	require.NoError(t, err)

	_, err = s.FetchUserInfo(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, admin, s.Profile())
}

func TestRefresh_ReplacesTokenOnly(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	api := apiFunc(func(_ context.Context, r *client.Request, out any) error {
		switch r.Path {
		case "/auth/login":
			return respond(out, models.LoginResult{Token: "T1", User: admin})
		case "/auth/refresh":
			return respond(out, models.RefreshResult{Token: "T2", ExpireAt: 1800000000})
		}
		return errors.New("unexpected")
	})
	s, err := New(ctx, repo, api)
	require.NoError(t, err)

	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, s.Refresh(ctx))

	assert.Equal(t, "T2", s.Token())
	assert.Equal(t, admin, s.Profile())
	assert.Equal(t, "T2", string(get(t, repo, common.TokenKey)))
	assert.Equal(t, int64(1800000000), s.ExpiresAt().Unix())
}

func TestRefresh_RequiresSession(t *testing.T) {
	s, err := New(context.Background(), newRepo(), loginAPI("", nil))
	require.NoError(t, err)
	assert.ErrorIs(t, s.Refresh(context.Background()), common.ErrInvalidToken)
}

func TestLogout_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	s, err := New(ctx, repo, loginAPI("T1", admin))
	require.NoError(t, err)
	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, s.Profile())
	assert.Nil(t, get(t, repo, common.TokenKey))
	assert.Nil(t, get(t, repo, common.UserInfoKey))

	writes := repo.writes.Load()
	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, writes, repo.writes.Load())
}

func TestLogout_StoreFailureStillClearsMemory(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	s, err := New(ctx, repo, loginAPI("T1", admin))
	require.NoError(t, err)
	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	repo.fail.Store(true)
	require.ErrorIs(t, s.Logout(ctx), errStoreDown)
	assert.False(t, s.IsLoggedIn())

	// the leftover keys are retried on the next logout
	repo.fail.Store(false)
	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, get(t, repo, common.TokenKey))
}

func TestInvalidate_OnlyMatchingToken(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	s, err := New(ctx, repo, loginAPI("T2", admin))
	require.NoError(t, err)
	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	assert.False(t, s.Invalidate(ctx, "T1"))
	assert.Equal(t, "T2", s.Token())

	assert.True(t, s.Invalidate(ctx, "T2"))
	assert.False(t, s.IsLoggedIn())
	assert.Nil(t, get(t, repo, common.TokenKey))
	assert.Nil(t, get(t, repo, common.UserInfoKey))

	assert.False(t, s.Invalidate(ctx, "T2"))
	assert.False(t, s.Invalidate(ctx, ""))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newRepo(), loginAPI("T1", admin))
	require.NoError(t, err)

	var mu sync.Mutex
	var states []bool
	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, st.LoggedIn())
	})

	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))
	unsubscribe()
	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, states)
}

func TestObserver_CanReadSession(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newRepo(), loginAPI("T1", admin))
	require.NoError(t, err)

	var seen string
	s.Subscribe(func(State) { seen = s.Token() })

	_, err = s.Login(ctx, models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "T1", seen)
}
