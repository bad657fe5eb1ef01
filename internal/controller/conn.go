package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchroom/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrConnClosed    = errors.New("connection closed")
)

// wsConn is the domain.Conn of a websocket client. Outbound messages go through a bounded queue
// drained by writePump.
type wsConn struct {
	id        string
	ws        *websocket.Conn
	send      chan *domain.Message
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(id string, ws *websocket.Conn, sendBuffer int) *wsConn {
	return &wsConn{
		id:   id,
		ws:   ws,
		send: make(chan *domain.Message, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *wsConn) Id() string {
	return c.id
}

func (c *wsConn) Send(msg *domain.Message) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close stops writePump and closes the socket, which ends the read loop.
func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.ws.Close()
	})

	return err
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
