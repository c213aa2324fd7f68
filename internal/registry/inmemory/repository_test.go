package inmemory

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/registry"
)

type nopSender struct{}

func (nopSender) Send([]byte) error { return nil }

func TestRepo_Register(t *testing.T) {
	repo := NewRepo(slog.Default())

	require.NoError(t, repo.Register("conn-1", "user-1", nopSender{}))

	err := repo.Register("conn-1", "user-2", nopSender{})
	assert.ErrorIs(t, err, registry.ErrAlreadyExists)

	userID, err := repo.IdentityOf("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID, "duplicate register must not overwrite")
}

func TestRepo_IdentityOf(t *testing.T) {
	repo := NewRepo(slog.Default())

	_, err := repo.IdentityOf("missing")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	require.NoError(t, repo.Register("conn-1", "user-1", nopSender{}))
	userID, err := repo.IdentityOf("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRepo_SenderOf(t *testing.T) {
	repo := NewRepo(slog.Default())
	sender := nopSender{}

	require.NoError(t, repo.Register("conn-1", "user-1", sender))

	got, err := repo.SenderOf("conn-1")
	require.NoError(t, err)
	assert.Equal(t, sender, got)

	_, err = repo.SenderOf("missing")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestRepo_Unregister(t *testing.T) {
	repo := NewRepo(slog.Default())

	assert.ErrorIs(t, repo.Unregister("missing"), registry.ErrNotFound)

	require.NoError(t, repo.Register("conn-1", "user-1", nopSender{}))
	require.NoError(t, repo.Unregister("conn-1"))

	_, err := repo.IdentityOf("conn-1")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	// id can be reused after unregister
	require.NoError(t, repo.Register("conn-1", "user-2", nopSender{}))
}
