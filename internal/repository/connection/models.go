package connection

import "github.com/sharetube/watchroom/internal/domain"

// Session binds an open connection to the room it joined and the name it joined with.
// RoomId is empty until the first join.
type Session struct {
	Conn   domain.Conn
	Name   string
	RoomId string
}
