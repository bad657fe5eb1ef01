package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/repository/connection"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotInRoom        = errors.New("connection is not in the room")
	ErrValidation       = errors.New("validation failed")
	ErrCodeExhausted    = errors.New("failed to generate a free room code")
)

type iRoomRepo interface {
	GetOrCreate(ctx context.Context, roomId string, fn func(rm *domain.Room, created bool) error) error
	Get(ctx context.Context, roomId string, fn func(rm *domain.Room) error) error
	Delete(ctx context.Context, roomId string, fn func(rm *domain.Room) error) error
	Exists(roomId string) bool
	Count() int
}

type iConnRepo interface {
	Add(conn domain.Conn) error
	Remove(connId string) (connection.Session, error)
	Get(connId string) (connection.Session, error)
	GetConn(connId string) (domain.Conn, error)
	Bind(connId, roomId, name string) error
	Unbind(connId, roomId string)
	Count() int
}

type iCodeStore interface {
	Reserve(ctx context.Context, code string, ttl time.Duration) error
	Exists(ctx context.Context, code string) (bool, error)
	Release(ctx context.Context, code string) error
}

type Config struct {
	NameMaxLength        int
	ChatMessageMaxLength int
	StrictAccessControl  bool
	RoomCodeTTL          time.Duration
}

type service struct {
	roomRepo     iRoomRepo
	connRepo     iConnRepo
	codeStore    iCodeStore
	generateCode func() (string, error)
	now          func() time.Time
	logger       *slog.Logger
	config       Config
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, codeStore iCodeStore, logger *slog.Logger, cfg *Config) *service {
	return &service{
		roomRepo:     roomRepo,
		connRepo:     connRepo,
		codeStore:    codeStore,
		generateCode: generateRoomCode,
		now:          time.Now,
		logger:       logger,
		config:       *cfg,
	}
}
