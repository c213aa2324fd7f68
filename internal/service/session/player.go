package session

import (
	"context"
	"fmt"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

type ChangePlaybackStateParams struct {
	ConnID       string
	RoomID       string
	IsPlaying    bool
	PlaybackRate float64
	SeekTo       float64
	UpdatedAt    int64
}

// ChangePlaybackState fans the new control state out to everyone but the
// origin connection: the originator already holds the state it just set, and
// echoing it back would cause seek jitter. The state is advisory, so the
// last-known-state mirror is best-effort and never blocks the broadcast.
func (s service) ChangePlaybackState(ctx context.Context, params *ChangePlaybackStateParams) error {
	userID, err := s.registry.IdentityOf(params.ConnID)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get identity", "error", err)
		return fmt.Errorf("failed to get identity: %w", err)
	}

	if !s.membership.IsMember(params.RoomID, params.ConnID) {
		return ErrNotAMember
	}

	if err := s.roomRepo.SetPlayerState(ctx, &room.SetPlayerStateParams{
		RoomID:       params.RoomID,
		IsPlaying:    params.IsPlaying,
		PlaybackRate: params.PlaybackRate,
		SeekTo:       params.SeekTo,
		UpdatedAt:    params.UpdatedAt,
	}); err != nil {
		s.logger.InfoContext(ctx, "failed to mirror player state", "room_id", params.RoomID, "error", err)
	}

	s.dispatcher.Broadcast(ctx, params.RoomID, &dispatcher.Event{
		Type: "PLAYER_STATE_UPDATED",
		Payload: map[string]any{
			"room_id": params.RoomID,
			"user_id": userID,
			"player_state": domain.PlayerState{
				IsPlaying:    params.IsPlaying,
				PlaybackRate: params.PlaybackRate,
				SeekTo:       params.SeekTo,
				UpdatedAt:    params.UpdatedAt,
			},
		},
	}, params.ConnID)

	return nil
}
