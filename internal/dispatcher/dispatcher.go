package dispatcher

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/domain"
)

type iMembership interface {
	MembersOf(roomID string) []string
}

type iSenderSource interface {
	SenderOf(connID string) (domain.Sender, error)
}

// Event is the wire frame fanned out to room members.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Dispatcher delivers events to every connection currently in a room.
// Membership is looked up at broadcast time, never from an earlier snapshot.
type Dispatcher struct {
	membership iMembership
	senders    iSenderSource
	logger     *slog.Logger
}

func New(membership iMembership, senders iSenderSource, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		membership: membership,
		senders:    senders,
		logger:     logger,
	}
}

// Broadcast fans the event out to the room's current members, skipping
// excludeConnID when non-empty. Delivery is best-effort per recipient: a
// connection that vanished or cannot keep up is logged and skipped, the rest
// of the fan-out proceeds. Returns the number of successful deliveries.
func (d *Dispatcher) Broadcast(ctx context.Context, roomID string, event *Event, excludeConnID string) int {
	data, err := json.Marshal(event)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to marshal event", "type", event.Type, "error", err)
		return 0
	}

	delivered := 0
	for _, connID := range d.membership.MembersOf(roomID) {
		if connID == excludeConnID {
			continue
		}

		sender, err := d.senders.SenderOf(connID)
		if err != nil {
			// lost the race with a disconnect
			d.logger.DebugContext(ctx, "skipping unknown connection", "conn_id", connID, "room_id", roomID)
			continue
		}

		if err := sender.Send(data); err != nil {
			d.logger.InfoContext(ctx, "failed to deliver event", "conn_id", connID, "room_id", roomID, "type", event.Type, "error", err)
			continue
		}

		delivered++
	}

	return delivered
}
