package room

type Profile struct {
	Username  string  `json:"username"`
	Color     string  `json:"color"`
	AvatarURL *string `json:"avatar_url"`
}

type PlayerState struct {
	IsPlaying    bool    `redis:"is_playing" json:"is_playing"`
	PlaybackRate float64 `redis:"playback_rate" json:"playback_rate"`
	SeekTo       float64 `redis:"seek_to" json:"seek_to"`
	UpdatedAt    int64   `redis:"updated_at" json:"updated_at"`
}

type SetProfileParams struct {
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Color     string  `json:"color"`
	AvatarURL *string `json:"avatar_url"`
}

type AddParticipantParams struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
}

type RemoveParticipantParams struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
}

type SetPlayerStateParams struct {
	RoomID       string  `json:"room_id"`
	IsPlaying    bool    `json:"is_playing"`
	PlaybackRate float64 `json:"playback_rate"`
	SeekTo       float64 `json:"seek_to"`
	UpdatedAt    int64   `json:"updated_at"`
}
