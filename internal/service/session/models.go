package session

import (
	"time"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
)

type Member struct {
	ConnID    string  `json:"conn_id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Color     string  `json:"color"`
	AvatarURL *string `json:"avatar_url"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Sender    Member    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomState struct {
	RoomID      string              `json:"room_id"`
	Members     []Member            `json:"members"`
	PlayerState *domain.PlayerState `json:"player_state"`
	Messages    []ChatMessage       `json:"messages"`
}
