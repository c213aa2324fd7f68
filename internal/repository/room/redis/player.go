package redis

import (
	"context"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

func (r Repo) SetPlayerState(ctx context.Context, params *room.SetPlayerStateParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	state := room.PlayerState{
		IsPlaying:    params.IsPlaying,
		PlaybackRate: params.PlaybackRate,
		SeekTo:       params.SeekTo,
		UpdatedAt:    params.UpdatedAt,
	}

	key := r.getPlayerStateKey(params.RoomID)
	if err := r.rc.HSet(ctx, key, state).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	r.rc.Expire(ctx, key, r.expireDuration)

	return nil
}

func (r Repo) GetPlayerState(ctx context.Context, roomID string) (room.PlayerState, error) {
	r.logger.DebugContext(ctx, "called", "room_id", roomID)
	key := r.getPlayerStateKey(roomID)

	cmd := r.rc.Exists(ctx, key)
	if err := cmd.Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.PlayerState{}, err
	}
	if cmd.Val() == 0 {
		return room.PlayerState{}, room.ErrPlayerStateNotFound
	}

	var state room.PlayerState
	if err := r.rc.HGetAll(ctx, key).Scan(&state); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.PlayerState{}, err
	}

	r.rc.Expire(ctx, key, r.expireDuration)

	return state, nil
}
