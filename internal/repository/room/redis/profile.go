package redis

import (
	"context"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

// profileHash is the redis representation of a profile. The avatar is
// stored as a plain string field, empty meaning not set, because hash
// scanning does not support pointer fields.
type profileHash struct {
	Username  string `redis:"username"`
	Color     string `redis:"color"`
	AvatarURL string `redis:"avatar_url"`
}

func (r Repo) SetProfile(ctx context.Context, params *room.SetProfileParams) error {
	r.logger.DebugContext(ctx, "called", "params", params)
	profile := profileHash{
		Username: params.Username,
		Color:    params.Color,
	}
	if params.AvatarURL != nil {
		profile.AvatarURL = *params.AvatarURL
	}

	key := r.getProfileKey(params.UserID)
	if err := r.rc.HSet(ctx, key, profile).Err(); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return err
	}

	r.rc.Expire(ctx, key, r.expireDuration)

	return nil
}

func (r Repo) GetProfile(ctx context.Context, userID string) (room.Profile, error) {
	r.logger.DebugContext(ctx, "called", "user_id", userID)
	var hash profileHash
	if err := r.rc.HGetAll(ctx, r.getProfileKey(userID)).Scan(&hash); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return room.Profile{}, err
	}

	if hash.Username == "" {
		r.logger.DebugContext(ctx, "returned", "error", room.ErrProfileNotFound)
		return room.Profile{}, room.ErrProfileNotFound
	}

	profile := room.Profile{
		Username: hash.Username,
		Color:    hash.Color,
	}
	if hash.AvatarURL != "" {
		profile.AvatarURL = &hash.AvatarURL
	}

	return profile, nil
}
