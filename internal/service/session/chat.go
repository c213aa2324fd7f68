package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/message"
)

type SendChatParams struct {
	ConnID string
	RoomID string
	Text   string
}

type SendChatResponse struct {
	Message   ChatMessage
	Delivered int
}

// SendChat persists the message first, then fans it out to the whole room
// including the sender: every client's chat log is driven by the one
// server-ordered stream. On persistence failure nothing is broadcast and the
// caller is told to retry.
func (s service) SendChat(ctx context.Context, params *SendChatParams) (SendChatResponse, error) {
	userID, err := s.registry.IdentityOf(params.ConnID)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get identity", "error", err)
		return SendChatResponse{}, fmt.Errorf("failed to get identity: %w", err)
	}

	if !s.membership.IsMember(params.RoomID, params.ConnID) {
		return SendChatResponse{}, ErrNotAMember
	}

	stored, err := s.messageRepo.SaveMessage(ctx, &message.SaveMessageParams{
		RoomID:   params.RoomID,
		SenderID: userID,
		Text:     params.Text,
	})
	if err != nil {
		s.logger.InfoContext(ctx, "failed to save message", "error", err)
		return SendChatResponse{}, errors.Join(ErrPersistenceFailure, err)
	}

	sender := Member{
		ConnID:   params.ConnID,
		UserID:   userID,
		Username: userID,
	}
	profile, err := s.roomRepo.GetProfile(ctx, userID)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get profile", "user_id", userID, "error", err)
	} else {
		sender.Username = profile.Username
		sender.Color = profile.Color
		sender.AvatarURL = profile.AvatarURL
	}

	chatMessage := ChatMessage{
		ID:        stored.ID,
		RoomID:    stored.RoomID,
		Sender:    sender,
		Text:      stored.Text,
		CreatedAt: stored.CreatedAt,
	}

	delivered := s.dispatcher.Broadcast(ctx, params.RoomID, &dispatcher.Event{
		Type:    "NEW_MESSAGE",
		Payload: chatMessage,
	}, "")

	return SendChatResponse{
		Message:   chatMessage,
		Delivered: delivered,
	}, nil
}
