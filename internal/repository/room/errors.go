package room

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrPlayerStateNotFound = errors.New("player state not found")
)
