package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/service/session"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/validator"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/wsrouter"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Code      string                      `json:"code"`
	Message   string                      `json:"message"`
	Retryable bool                        `json:"retryable"`
	Fields    []validator.ValidationError `json:"fields,omitempty"`
}

type validationError struct {
	fields []validator.ValidationError
}

func (e *validationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.fields))
}

func (c *controller) writeEvent(ctx context.Context, event *Output) error {
	cl := c.getClientFromCtx(ctx)
	if cl == nil {
		return errors.New("no client in context")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return cl.Send(data)
}

// writeError maps a handler error to the wire-level error frame. Internal
// details never leak: unknown errors collapse to INTERNAL_ERROR.
func (c *controller) writeError(ctx context.Context, _ *websocket.Conn, err error) {
	payload := errorPayload{
		Code:    "INTERNAL_ERROR",
		Message: "something went wrong",
	}

	var vErr *validationError
	switch {
	case errors.Is(err, wsrouter.ErrUnknownType):
		payload.Code = "UNKNOWN_TYPE"
		payload.Message = "unknown message type"
	case errors.As(err, &vErr):
		payload.Code = "VALIDATION_ERROR"
		payload.Message = "invalid payload"
		payload.Fields = vErr.fields
	case errors.Is(err, session.ErrUnauthorized):
		payload.Code = "UNAUTHORIZED"
		payload.Message = "you are not a participant of this room"
	case errors.Is(err, session.ErrNotAMember):
		payload.Code = "NOT_A_MEMBER"
		payload.Message = "join the room first"
	case errors.Is(err, session.ErrRoomFull):
		payload.Code = "ROOM_FULL"
		payload.Message = "room is full"
	case errors.Is(err, session.ErrPersistenceFailure):
		payload.Code = "PERSISTENCE_FAILED"
		payload.Message = "message was not stored, please retry"
		payload.Retryable = true
	default:
		c.logger.WarnContext(ctx, "handler error", "error", err)
	}

	if writeErr := c.writeEvent(ctx, &Output{Type: "ERROR", Payload: payload}); writeErr != nil {
		c.logger.DebugContext(ctx, "failed to write error frame", "error", writeErr)
	}
}
