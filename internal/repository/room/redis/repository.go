package redis

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Repo struct {
	rc             *redis.Client
	logger         *slog.Logger
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration, logger *slog.Logger) *Repo {
	return &Repo{
		rc:             rc,
		logger:         logger,
		expireDuration: expireDuration,
	}
}

func (r Repo) getParticipantsKey(roomID string) string {
	return "room:" + roomID + ":participants"
}

func (r Repo) getPlayerStateKey(roomID string) string {
	return "room:" + roomID + ":player"
}

func (r Repo) getProfileKey(userID string) string {
	return "user:" + userID
}
