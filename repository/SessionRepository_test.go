package repository

import (
	"path/filepath"
	"testing"

	"storegate/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSessionRepo_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	repo, err := NewFileSessionRepository(path)
	require.NoError(t, err)

	// Empty store: no session yet.
	_, _, ok, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	user := entities.User{Id: 1, Email: "ann@example.com", Role: entities.RoleAdmin}
	require.NoError(t, repo.Save("t1", user))

	token, got, ok, err := repo.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t1", token)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)

	require.NoError(t, repo.Clear())
	_, _, ok, err = repo.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-empty store stays quiet.
	require.NoError(t, repo.Clear())
}

func TestFileSessionRepo_OverwriteReplacesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	repo, err := NewFileSessionRepository(path)
	require.NoError(t, err)

	require.NoError(t, repo.Save("t1", entities.User{Id: 1}))
	require.NoError(t, repo.Save("t2", entities.User{Id: 2}))

	token, user, ok, err := repo.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t2", token)
	assert.Equal(t, 2, user.Id)
}
