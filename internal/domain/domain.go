package domain

// Sender is the outbound half of a client connection. Implementations must
// not block: a send that cannot be accepted immediately returns an error
// instead of stalling the caller.
type Sender interface {
	Send(data []byte) error
}

type PlayerState struct {
	IsPlaying    bool    `json:"is_playing"`
	PlaybackRate float64 `json:"playback_rate"`
	SeekTo       float64 `json:"seek_to"`
	UpdatedAt    int64   `json:"updated_at"`
}
