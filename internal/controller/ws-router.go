package controller

import (
	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.wsRequestIdWSMw(), c.loggerWSMw())

	// membership
	wsrouter.Handle(mux, domain.EventJoinRoom, c.handleJoinRoom)
	wsrouter.Handle(mux, domain.EventLeaveRoom, c.handleLeaveRoom)

	// chat
	wsrouter.Handle(mux, domain.EventChatMessage, c.handleChatMessage)

	// player
	wsrouter.Handle(mux, domain.EventVideoAction, c.handleVideoAction)
	wsrouter.Handle(mux, domain.EventSubtitleChange, c.handleSubtitleChange)

	// access control
	wsrouter.Handle(mux, domain.EventRequestChange, c.handleRequestChange)
	wsrouter.Handle(mux, domain.EventGrantChange, c.handleGrantChange)
	wsrouter.Handle(mux, domain.EventDenyRequest, c.handleDenyRequest)

	return mux
}
