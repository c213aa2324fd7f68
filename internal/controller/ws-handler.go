package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/service/session"
)

func (c *controller) unmarshalAndValidate(payload json.RawMessage, input any) error {
	if err := json.Unmarshal(payload, input); err != nil {
		return &validationError{}
	}

	if fields, ok := c.validate.Validate(input); !ok {
		return &validationError{fields: fields}
	}

	return nil
}

func (c *controller) handleAlive(_ context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	return nil
}

type JoinRoomInput struct {
	RoomID string `json:"room_id" validate:"required,max=64"`
}

func (c *controller) handleJoinRoom(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input JoinRoomInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	joinRoomResp, err := c.sessionService.JoinRoom(ctx, &session.JoinRoomParams{
		ConnID: c.getConnIDFromCtx(ctx),
		RoomID: input.RoomID,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	if err := c.writeEvent(ctx, &Output{
		Type:    "ROOM_STATE",
		Payload: joinRoomResp.RoomState,
	}); err != nil {
		return fmt.Errorf("failed to write room state: %w", err)
	}

	return nil
}

type LeaveRoomInput struct {
	RoomID string `json:"room_id" validate:"required,max=64"`
}

func (c *controller) handleLeaveRoom(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input LeaveRoomInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if err := c.sessionService.LeaveRoom(ctx, &session.LeaveRoomParams{
		ConnID: c.getConnIDFromCtx(ctx),
		RoomID: input.RoomID,
	}); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	return nil
}

type SendChatInput struct {
	RoomID string `json:"room_id" validate:"required,max=64"`
	Text   string `json:"text" validate:"required,max=2000"`
}

func (c *controller) handleSendChat(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input SendChatInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	// sender gets the message via the room broadcast, no direct ack needed
	if _, err := c.sessionService.SendChat(ctx, &session.SendChatParams{
		ConnID: c.getConnIDFromCtx(ctx),
		RoomID: input.RoomID,
		Text:   input.Text,
	}); err != nil {
		return fmt.Errorf("failed to send chat: %w", err)
	}

	return nil
}

type UpdatePlayerStateInput struct {
	RoomID       string  `json:"room_id" validate:"required,max=64"`
	IsPlaying    bool    `json:"is_playing"`
	PlaybackRate float64 `json:"playback_rate" validate:"required,gt=0"`
	SeekTo       float64 `json:"seek_to" validate:"gte=0"`
	UpdatedAt    int64   `json:"updated_at"`
}

func (c *controller) handleUpdatePlayerState(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input UpdatePlayerStateInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if err := c.sessionService.ChangePlaybackState(ctx, &session.ChangePlaybackStateParams{
		ConnID:       c.getConnIDFromCtx(ctx),
		RoomID:       input.RoomID,
		IsPlaying:    input.IsPlaying,
		PlaybackRate: input.PlaybackRate,
		SeekTo:       input.SeekTo,
		UpdatedAt:    input.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("failed to change playback state: %w", err)
	}

	return nil
}
