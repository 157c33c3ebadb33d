package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"storegate/models"
	"storegate/repository"
	"storegate/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, backend http.HandlerFunc) (AuthService, *repository.BackendClient) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := repository.NewBackendClient(srv.URL, time.Second)
	require.NoError(t, err)
	authRepo, err := repository.NewAuthRepository(client)
	require.NoError(t, err)
	sessionRepo, err := repository.NewFileSessionRepository(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	return NewAuthService(authRepo, sessionRepo, client, state.NewAuthStore()), client
}

func okLoginBackend(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"token":"t1","user":{"id":1,"email":"ann@example.com","role":"Admin"}}`))
}

func TestAuthService_LoginThenCheckAuthState(t *testing.T) {
	aus, client := newAuthFixture(t, okLoginBackend)

	err := aus.LoginAdmin(context.Background(), models.Credentials{Email: "ann@example.com", Password: "p"})
	require.NoError(t, err)

	s := aus.Session()
	require.True(t, s.IsAuthenticated)
	assert.Equal(t, 1, s.User.Id)
	assert.Equal(t, "t1", client.Token())

	// Simulate a restart: wipe runtime state, rebuild from the mirror.
	aus.Store().Logout()
	client.ClearToken()

	assert.True(t, aus.CheckAuthState())
	restored := aus.Session()
	assert.Equal(t, s.User, restored.User)
	assert.True(t, restored.IsAuthenticated)
	assert.Equal(t, "t1", client.Token())
}

func TestAuthService_LogoutThenCheckAuthState(t *testing.T) {
	aus, client := newAuthFixture(t, okLoginBackend)

	require.NoError(t, aus.LoginUser(context.Background(), models.Credentials{}))
	aus.Logout()

	assert.Empty(t, client.Token())
	assert.False(t, aus.CheckAuthState())

	s := aus.Session()
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
}

func TestAuthService_LoginFailureSetsSessionError(t *testing.T) {
	aus, client := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"wrong password"}`))
	})

	err := aus.LoginAdmin(context.Background(), models.Credentials{})
	require.Error(t, err)

	s := aus.Session()
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "wrong password", s.Error)
	assert.Empty(t, client.Token())
}

func TestAuthService_RegisterBehavesLikeLogin(t *testing.T) {
	aus, client := newAuthFixture(t, okLoginBackend)

	err := aus.Register(context.Background(), models.RegisterRequest{Email: "ann@example.com", Password: "p", FullName: "Ann"})
	require.NoError(t, err)

	assert.True(t, aus.Session().IsAuthenticated)
	assert.Equal(t, "t1", client.Token())

	// The mirror survives a simulated reload.
	aus.Store().Logout()
	assert.True(t, aus.CheckAuthState())
}

func TestAuthService_CheckAuthStateIdempotent(t *testing.T) {
	aus, _ := newAuthFixture(t, okLoginBackend)
	require.NoError(t, aus.LoginUser(context.Background(), models.Credentials{}))

	first := aus.CheckAuthState()
	second := aus.CheckAuthState()
	assert.True(t, first)
	assert.True(t, second)
	assert.True(t, aus.Session().IsAuthenticated)
}
