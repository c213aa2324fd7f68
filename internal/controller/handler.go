package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/service/session"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/ctxlogger"
)

const sendBufferSize = 256

// serveWS is the single websocket entry point. The user identity arrives as a
// query parameter on the upgrade request; everything after that is framed
// messages routed by the ws mux.
func (c *controller) serveWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user-id")
	if userID == "" {
		http.Error(w, "user-id is required", http.StatusBadRequest)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	connID := uuid.NewString()
	cl := newClient(conn, sendBufferSize)

	ctx := ctxlogger.AppendCtx(r.Context(), slog.String("conn_id", connID))
	ctx = ctxlogger.AppendCtx(ctx, slog.String("user_id", userID))

	if err := c.sessionService.Connect(ctx, &session.ConnectParams{
		ConnID: connID,
		UserID: userID,
		Sender: cl,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to connect", "error", err)
		conn.Close()
		return
	}

	go cl.writePump()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ctx = context.WithValue(ctx, connIDCtxKey, connID)
	ctx = context.WithValue(ctx, userIDCtxKey, userID)
	ctx = context.WithValue(ctx, clientCtxKey, cl)

	if err := c.writeEvent(ctx, &Output{
		Type: "CONNECTED",
		Payload: map[string]any{
			"conn_id": connID,
		},
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to write connected frame", "error", err)
	}

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "connection closed", "error", err)
	}

	if err := c.sessionService.Disconnect(ctx, &session.DisconnectParams{ConnID: connID}); err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.InfoContext(ctx, "failed to disconnect", "error", err)
		}
	}

	cl.close()
}
