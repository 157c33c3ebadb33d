package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storegate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRepoForBody(t *testing.T, status int, body string) AuthRepository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client, err := NewBackendClient(srv.URL, time.Second)
	require.NoError(t, err)
	repo, err := NewAuthRepository(client)
	require.NoError(t, err)
	return repo
}

func TestAuthRepo_LoginVariantPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"user and token", `{"token":"t1","user":{"id":1,"email":"a@b.c"}}`},
		{"admin and accessToken", `{"accessToken":"t1","admin":{"id":1,"email":"a@b.c"}}`},
		{"record under data", `{"token":"t1","data":{"id":1,"email":"a@b.c"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := authRepoForBody(t, http.StatusOK, tc.body)
			token, user, err := repo.LoginAdmin(context.Background(), models.Credentials{Email: "a@b.c", Password: "p"})
			require.NoError(t, err)
			assert.Equal(t, "t1", token)
			assert.Equal(t, 1, user.Id)
		})
	}
}

func TestAuthRepo_LoginMissingUserIsError(t *testing.T) {
	repo := authRepoForBody(t, http.StatusOK, `{"token":"t1"}`)
	_, _, err := repo.LoginAdmin(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.Equal(t, "invalid response from server", err.Error())
}

func TestAuthRepo_LoginMissingTokenIsError(t *testing.T) {
	repo := authRepoForBody(t, http.StatusOK, `{"user":{"id":1,"email":"a@b.c"}}`)
	_, _, err := repo.LoginAdmin(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.Equal(t, "invalid response from server", err.Error())
}

func TestAuthRepo_LoginRejected(t *testing.T) {
	repo := authRepoForBody(t, http.StatusUnauthorized, `{"message":"wrong password"}`)
	_, _, err := repo.LoginUser(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
	assert.Equal(t, "wrong password", err.Error())
}

func TestAuthRepo_RegisterFieldErrors(t *testing.T) {
	body := `{"success":false,"message":"validation failed","errors":{"email":["email is taken"],"password":["too short"]}}`
	repo := authRepoForBody(t, http.StatusBadRequest, body)

	_, _, err := repo.Register(context.Background(), models.RegisterRequest{})
	require.Error(t, err)

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "validation failed", vErr.Message)
	assert.Equal(t, []string{"email is taken"}, vErr.Fields["email"])
	assert.Equal(t, []string{"too short"}, vErr.Fields["password"])
}

func TestAuthRepo_RegisterFlatMessage(t *testing.T) {
	repo := authRepoForBody(t, http.StatusBadRequest, `{"success":false,"message":"email is taken"}`)

	_, _, err := repo.Register(context.Background(), models.RegisterRequest{})
	require.Error(t, err)

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email is taken", vErr.Message)
	assert.Empty(t, vErr.Fields)
}
