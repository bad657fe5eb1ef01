package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/service/room"
	"github.com/sharetube/watchroom/pkg/validator"
	"github.com/sharetube/watchroom/pkg/wsrouter"
)

type iRoomService interface {
	Connect(context.Context, domain.Conn) error
	Disconnect(ctx context.Context, connId string)
	JoinRoom(context.Context, *room.JoinRoomParams) error
	LeaveRoom(context.Context, *room.LeaveRoomParams) error
	PostMessage(context.Context, *room.PostMessageParams) error
	PlaybackAction(context.Context, *room.PlaybackActionParams) error
	SetSubtitle(context.Context, *room.SetSubtitleParams) error
	RequestChange(context.Context, *room.RequestChangeParams) error
	GrantChange(context.Context, *room.GrantChangeParams) error
	DenyRequest(context.Context, *room.DenyRequestParams) error
	OnMediaChanged(ctx context.Context, roomId string) error
	OnSubtitlesChanged(ctx context.Context, roomId string) error
	EndSession(ctx context.Context, roomId string) error
	CreateRoomCode(context.Context) (string, error)
	GetRoomInfo(ctx context.Context, roomId string) (room.RoomInfo, error)
	Stats() room.Stats
}

type Config struct {
	SendBuffer int
	ReadLimit  int64
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	wsmux       *wsrouter.WSRouter
	validate    *validator.Validator
	logger      *slog.Logger
	config      Config
}

func NewController(roomService iRoomService, logger *slog.Logger, cfg *Config) *controller {
	c := &controller{
		roomService: roomService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
		config:   *cfg,
	}
	c.wsmux = c.getWSRouter()

	return c
}
