package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/repository/message"
)

// Repo durably stores chat messages. Schema:
//
//	CREATE TABLE messages (
//	    id         uuid PRIMARY KEY,
//	    room_id    text NOT NULL,
//	    sender_id  text NOT NULL,
//	    body       text NOT NULL,
//	    created_at timestamptz NOT NULL DEFAULT now()
//	);
//	CREATE INDEX messages_room_created_idx ON messages (room_id, created_at DESC);
type Repo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewRepo(pool *pgxpool.Pool, logger *slog.Logger) *Repo {
	return &Repo{
		pool:   pool,
		logger: logger,
	}
}

func (r Repo) SaveMessage(ctx context.Context, params *message.SaveMessageParams) (message.Message, error) {
	r.logger.DebugContext(ctx, "called", "params", params)
	msg := message.Message{
		ID:       uuid.NewString(),
		RoomID:   params.RoomID,
		SenderID: params.SenderID,
		Text:     params.Text,
	}

	if err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (id, room_id, sender_id, body)
		   VALUES ($1, $2, $3, $4)
		   RETURNING created_at`,
		msg.ID, msg.RoomID, msg.SenderID, msg.Text,
	).Scan(&msg.CreatedAt); err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return message.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return msg, nil
}

// RecentMessages returns up to limit messages for the room in chronological order.
func (r Repo) RecentMessages(ctx context.Context, roomID string, limit int) ([]message.Message, error) {
	r.logger.DebugContext(ctx, "called", "room_id", roomID, "limit", limit)
	rows, err := r.pool.Query(ctx,
		`SELECT id, room_id, sender_id, body, created_at
		   FROM messages
		  WHERE room_id = $1
		  ORDER BY created_at DESC
		  LIMIT $2`,
		roomID, limit,
	)
	if err != nil {
		r.logger.DebugContext(ctx, "returned", "error", err)
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]message.Message, 0, limit)
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.SenderID, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	// newest-first from the query, chronological on the wire
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
