package controller

import (
	"github.com/Sumit-Saurabh98/SyncWatch/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.loggerWSMw())
	mux.OnError(c.writeError)

	mux.Handle("ALIVE", c.handleAlive)

	// room
	mux.Handle("JOIN_ROOM", c.handleJoinRoom)
	mux.Handle("LEAVE_ROOM", c.handleLeaveRoom)

	// chat
	mux.Handle("SEND_CHAT", c.handleSendChat)

	// player
	mux.Handle("UPDATE_PLAYER_STATE", c.handleUpdatePlayerState)

	return mux
}
