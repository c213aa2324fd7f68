package redis

import (
	"context"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

func (r Repo) IsParticipant(ctx context.Context, userID, roomID string) (bool, error) {
	r.logger.DebugContext(ctx, "called", "user_id", userID, "room_id", roomID)
	ok, err := r.rc.SIsMember(ctx, r.getParticipantsKey(roomID), userID).Result()
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return false, err
	}

	return ok, nil
}

func (r Repo) AddParticipant(ctx context.Context, params *room.AddParticipantParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	key := r.getParticipantsKey(params.RoomID)
	if err := r.rc.SAdd(ctx, key, params.UserID).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	r.rc.Expire(ctx, key, r.expireDuration)

	return nil
}

func (r Repo) RemoveParticipant(ctx context.Context, params *room.RemoveParticipantParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	if err := r.rc.SRem(ctx, r.getParticipantsKey(params.RoomID), params.UserID).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	return nil
}
