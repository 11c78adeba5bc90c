package sessionstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minitodo/internal/domain"
)

func TestStore_SaveAndLoad(t *testing.T) {
	// Setup
	store := New(t.TempDir())
	sess := &domain.Session{
		UserID:       "user-1",
		Email:        "user@example.com",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	// Execute
	require.NoError(t, store.Save(sess))
	loaded, err := store.Load()

	// Assert
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess, loaded)
}

func TestStore_Load_NoFile(t *testing.T) {
	// Setup
	store := New(t.TempDir())

	// Execute
	loaded, err := store.Load()

	// Assert
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Save_OwnerOnlyPermissions(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)

	// Execute
	require.NoError(t, store.Save(&domain.Session{UserID: "user-1"}))

	// Assert: the file holds bearer tokens
	info, err := os.Stat(filepath.Join(dir, SessionFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Clear(t *testing.T) {
	// Setup
	store := New(t.TempDir())
	require.NoError(t, store.Save(&domain.Session{UserID: "user-1"}))

	// Execute
	require.NoError(t, store.Clear())

	// Assert
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is not an error
	assert.NoError(t, store.Clear())
}

func TestStore_Load_MalformedFile(t *testing.T) {
	// Setup
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SessionFileName), []byte("{not json"), 0o600))
	store := New(dir)

	// Execute
	_, err := store.Load()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse session file")
}
