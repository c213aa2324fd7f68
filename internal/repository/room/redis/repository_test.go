package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})

	return NewRepo(rc, time.Hour, slog.Default())
}

func TestRepo_Participants(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.IsParticipant(ctx, "user-1", "room-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.AddParticipant(ctx, &room.AddParticipantParams{
		UserID: "user-1",
		RoomID: "room-1",
	}))

	ok, err = repo.IsParticipant(ctx, "user-1", "room-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsParticipant(ctx, "user-1", "room-2")
	require.NoError(t, err)
	assert.False(t, ok, "participation is per room")

	require.NoError(t, repo.RemoveParticipant(ctx, &room.RemoveParticipantParams{
		UserID: "user-1",
		RoomID: "room-1",
	}))

	ok, err = repo.IsParticipant(ctx, "user-1", "room-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepo_Profile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, room.ErrProfileNotFound)

	avatar := "https://example.com/a.png"
	require.NoError(t, repo.SetProfile(ctx, &room.SetProfileParams{
		UserID:    "user-1",
		Username:  "alice",
		Color:     "fff",
		AvatarURL: &avatar,
	}))

	profile, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "fff", profile.Color)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, avatar, *profile.AvatarURL)
}

func TestRepo_PlayerState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetPlayerState(ctx, "room-1")
	assert.ErrorIs(t, err, room.ErrPlayerStateNotFound)

	require.NoError(t, repo.SetPlayerState(ctx, &room.SetPlayerStateParams{
		RoomID:       "room-1",
		IsPlaying:    true,
		PlaybackRate: 1.5,
		SeekTo:       42,
		UpdatedAt:    1700000000,
	}))

	state, err := repo.GetPlayerState(ctx, "room-1")
	require.NoError(t, err)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 1.5, state.PlaybackRate)
	assert.Equal(t, float64(42), state.SeekTo)
	assert.Equal(t, int64(1700000000), state.UpdatedAt)
}
