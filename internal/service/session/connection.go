package session

import (
	"context"
	"fmt"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/dispatcher"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
)

type ConnectParams struct {
	ConnID string
	UserID string
	Sender domain.Sender
}

func (s service) Connect(ctx context.Context, params *ConnectParams) error {
	if err := s.registry.Register(params.ConnID, params.UserID, params.Sender); err != nil {
		s.logger.InfoContext(ctx, "failed to register connection", "error", err)
		return fmt.Errorf("failed to register connection: %w", err)
	}

	return nil
}

type DisconnectParams struct {
	ConnID string
}

// Disconnect removes the connection from every room it joined and announces
// the reduced roster to each. The registry entry goes first so that no
// broadcast initiated after this point can reach the departing connection.
func (s service) Disconnect(ctx context.Context, params *DisconnectParams) error {
	roomIDs := s.membership.RoomsOf(params.ConnID)

	if err := s.registry.Unregister(params.ConnID); err != nil {
		s.logger.InfoContext(ctx, "failed to unregister connection", "error", err)
		return fmt.Errorf("failed to unregister connection: %w", err)
	}

	for _, roomID := range roomIDs {
		remaining := s.membership.Leave(roomID, params.ConnID)

		s.dispatcher.Broadcast(ctx, roomID, &dispatcher.Event{
			Type: "MEMBER_LIST_UPDATED",
			Payload: map[string]any{
				"room_id": roomID,
				"members": s.memberList(ctx, remaining),
			},
		}, "")
	}

	return nil
}
