package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/service/session"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/validator"
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/wsrouter"
)

type iSessionService interface {
	Connect(context.Context, *session.ConnectParams) error
	Disconnect(context.Context, *session.DisconnectParams) error
	JoinRoom(context.Context, *session.JoinRoomParams) (session.JoinRoomResponse, error)
	LeaveRoom(context.Context, *session.LeaveRoomParams) error
	SendChat(context.Context, *session.SendChatParams) (session.SendChatResponse, error)
	ChangePlaybackState(context.Context, *session.ChangePlaybackStateParams) error
}

type controller struct {
	sessionService iSessionService
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	wsmux          *wsrouter.WSRouter
	logger         *slog.Logger
}

func NewController(sessionService iSessionService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessionService: sessionService,
		validate:       validator.New(),
		logger:         logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
