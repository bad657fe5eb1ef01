package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sharetube/watchroom/pkg/ctxlogger"
	"github.com/sharetube/watchroom/pkg/wsrouter"
)

func (c controller) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	connId := uuid.NewString()
	ctx := context.WithValue(r.Context(), connIdCtxKey, connId)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("connection_id", connId))

	conn := newWSConn(connId, ws, c.config.SendBuffer)
	defer conn.Close()

	if err := c.roomService.Connect(ctx, conn); err != nil {
		c.logger.WarnContext(ctx, "failed to connect", "error", err)
		return
	}
	defer c.roomService.Disconnect(ctx, connId)

	c.logger.InfoContext(ctx, "websocket connected")
	go conn.writePump()
	c.readPump(ctx, conn)
	c.logger.InfoContext(ctx, "websocket disconnected")
}

func (c controller) readPump(ctx context.Context, conn *wsConn) {
	if c.config.ReadLimit > 0 {
		conn.ws.SetReadLimit(c.config.ReadLimit)
	}
	conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.InfoContext(ctx, "websocket read failed", "error", err)
			}

			return
		}

		if err := c.wsmux.Dispatch(ctx, conn.ws, data); err != nil {
			if errors.Is(err, wsrouter.ErrUnknownMessageType) || errors.Is(err, wsrouter.ErrMalformedMessage) {
				c.logger.InfoContext(ctx, "websocket message ignored", "error", err)
			}
		}
	}
}
