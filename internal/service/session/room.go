package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/room"
)

type JoinRoomParams struct {
	ConnID string
	RoomID string
}

type JoinRoomResponse struct {
	RoomState RoomState
}

func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	userID, err := s.registry.IdentityOf(params.ConnID)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get identity", "error", err)
		return JoinRoomResponse{}, fmt.Errorf("failed to get identity: %w", err)
	}

	isParticipant, err := s.roomRepo.IsParticipant(ctx, userID, params.RoomID)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to check participant", "error", err)
		return JoinRoomResponse{}, fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return JoinRoomResponse{}, ErrUnauthorized
	}

	if s.membersLimit > 0 && !s.membership.IsMember(params.RoomID, params.ConnID) {
		if len(s.membership.MembersOf(params.RoomID)) >= s.membersLimit {
			return JoinRoomResponse{}, ErrRoomFull
		}
	}

	memberIDs := s.membership.Join(params.RoomID, params.ConnID)
	members := s.memberList(ctx, memberIDs)

	// the joiner sees the roster too, so no exclusion
	s.dispatcher.Broadcast(ctx, params.RoomID, &dispatcher.Event{
		Type: "MEMBER_LIST_UPDATED",
		Payload: map[string]any{
			"room_id": params.RoomID,
			"members": members,
		},
	}, "")

	return JoinRoomResponse{
		RoomState: s.roomState(ctx, params.RoomID, members),
	}, nil
}

type LeaveRoomParams struct {
	ConnID string
	RoomID string
}

func (s service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) error {
	remaining := s.membership.Leave(params.RoomID, params.ConnID)

	s.dispatcher.Broadcast(ctx, params.RoomID, &dispatcher.Event{
		Type: "MEMBER_LIST_UPDATED",
		Payload: map[string]any{
			"room_id": params.RoomID,
			"members": s.memberList(ctx, remaining),
		},
	}, "")

	return nil
}

// roomState assembles what a fresh joiner needs to render the room: roster,
// last known player state, and recent chat history. Both lookups are
// best-effort; a missing mirror or an unreachable history store degrades to
// an empty section instead of failing the join.
func (s service) roomState(ctx context.Context, roomID string, members []Member) RoomState {
	state := RoomState{
		RoomID:  roomID,
		Members: members,
	}

	playerState, err := s.roomRepo.GetPlayerState(ctx, roomID)
	if err != nil {
		if !errors.Is(err, room.ErrPlayerStateNotFound) {
			s.logger.InfoContext(ctx, "failed to get player state", "room_id", roomID, "error", err)
		}
	} else {
		state.PlayerState = &domain.PlayerState{
			IsPlaying:    playerState.IsPlaying,
			PlaybackRate: playerState.PlaybackRate,
			SeekTo:       playerState.SeekTo,
			UpdatedAt:    playerState.UpdatedAt,
		}
	}

	history, err := s.messageRepo.RecentMessages(ctx, roomID, s.historyLimit)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get recent messages", "room_id", roomID, "error", err)
		return state
	}

	state.Messages = make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		sender := Member{UserID: msg.SenderID, Username: msg.SenderID}
		profile, err := s.roomRepo.GetProfile(ctx, msg.SenderID)
		if err == nil {
			sender.Username = profile.Username
			sender.Color = profile.Color
			sender.AvatarURL = profile.AvatarURL
		}

		state.Messages = append(state.Messages, ChatMessage{
			ID:        msg.ID,
			RoomID:    msg.RoomID,
			Sender:    sender,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		})
	}

	return state
}
