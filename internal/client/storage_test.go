package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma/server/internal/model"
)

func TestStorageRoundTrip(t *testing.T) {
	storage := NewStorage(t.TempDir())

	state := AuthState{
		User: model.User{
			ID:        uuid.New(),
			Email:     "jordan@example.com",
			Name:      "Jordan",
			CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		Tokens: model.AuthTokens{
			AccessToken:  "access",
			RefreshToken: "refresh",
		},
	}
	require.NoError(t, storage.Save(state))

	loaded, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, state, *loaded)
}

func TestStorageLoadMissing(t *testing.T) {
	storage := NewStorage(t.TempDir())
	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".forma")
	storage := NewStorage(dir)
	require.NoError(t, storage.Save(AuthState{}))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestStorageClear(t *testing.T) {
	storage := NewStorage(t.TempDir())
	require.NoError(t, storage.Save(AuthState{Tokens: model.AuthTokens{AccessToken: "a"}}))
	require.NoError(t, storage.Clear())

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing twice is fine.
	require.NoError(t, storage.Clear())
}

func TestStorageLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.json"), []byte("{not json"), 0o600))

	_, err := storage.Load()
	assert.Error(t, err)
}
