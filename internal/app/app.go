package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/watchroom/internal/controller"
	connInmemory "github.com/sharetube/watchroom/internal/repository/connection/inmemory"
	roomInmemory "github.com/sharetube/watchroom/internal/repository/room/inmemory"
	codeInmemory "github.com/sharetube/watchroom/internal/repository/roomcode/inmemory"
	codeRedis "github.com/sharetube/watchroom/internal/repository/roomcode/redis"
	"github.com/sharetube/watchroom/internal/service/room"
	"github.com/sharetube/watchroom/pkg/ctxlogger"
	"github.com/sharetube/watchroom/pkg/redisclient"
)

const (
	RoomCodeStoreMemory = "memory"
	RoomCodeStoreRedis  = "redis"
)

type AppConfig struct {
	Host                 string        `json:"host"`
	Port                 int           `json:"port"`
	LogLevel             string        `json:"log_level"`
	MembersLimit         int           `json:"members_limit"`
	ChatMessageMaxLength int           `json:"chat_message_max_length"`
	NameMaxLength        int           `json:"name_max_length"`
	StrictAccessControl  bool          `json:"strict_access_control"`
	RoomCodeStore        string        `json:"room_code_store"`
	RoomCodeTTL          time.Duration `json:"room_code_ttl"`
	RedisPort            int           `json:"redis_port"`
	RedisHost            string        `json:"redis_host"`
	RedisPassword        string        `json:"-"`
	WSSendBuffer         int           `json:"ws_send_buffer"`
	WSReadLimit          int64         `json:"ws_read_limit"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.MembersLimit < 0 {
		return fmt.Errorf("members limit must not be negative")
	}
	if cfg.ChatMessageMaxLength < 0 || cfg.NameMaxLength < 0 {
		return fmt.Errorf("length limits must not be negative")
	}
	if cfg.RoomCodeStore != RoomCodeStoreMemory && cfg.RoomCodeStore != RoomCodeStoreRedis {
		return fmt.Errorf("unknown room code store %q", cfg.RoomCodeStore)
	}
	if cfg.RoomCodeTTL <= 0 {
		return fmt.Errorf("room code ttl must be greater than 0")
	}
	if cfg.WSSendBuffer < 1 {
		return fmt.Errorf("ws send buffer must be greater than 0")
	}
	if cfg.WSReadLimit < 0 {
		return fmt.Errorf("ws read limit must not be negative")
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := slog.LevelInfo
	logLevel.UnmarshalText([]byte(strings.ToUpper(level)))

	return slog.New(ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	})
}

// newHandler wires stores, service and controller. The returned close func releases the redis
// client when one was opened.
func newHandler(cfg *AppConfig, logger *slog.Logger) (http.Handler, func() error, error) {
	closeFn := func() error { return nil }

	var codeStore interface {
		Reserve(ctx context.Context, code string, ttl time.Duration) error
		Exists(ctx context.Context, code string) (bool, error)
		Release(ctx context.Context, code string) error
	}
	switch cfg.RoomCodeStore {
	case RoomCodeStoreRedis:
		rc, err := redisclient.NewRedisClient(&redisclient.Config{
			Port:     cfg.RedisPort,
			Host:     cfg.RedisHost,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		closeFn = func() error { return closeRedis(rc) }
		codeStore = codeRedis.NewRepo(rc, logger)
	default:
		codeStore = codeInmemory.NewRepo(logger)
	}

	roomRepo := roomInmemory.NewRepo(cfg.MembersLimit, logger)
	connectionRepo := connInmemory.NewRepo(logger)
	roomService := room.NewService(roomRepo, connectionRepo, codeStore, logger, &room.Config{
		NameMaxLength:        cfg.NameMaxLength,
		ChatMessageMaxLength: cfg.ChatMessageMaxLength,
		StrictAccessControl:  cfg.StrictAccessControl,
		RoomCodeTTL:          cfg.RoomCodeTTL,
	})
	controller := controller.NewController(roomService, logger, &controller.Config{
		SendBuffer: cfg.WSSendBuffer,
		ReadLimit:  cfg.WSReadLimit,
	})

	return controller.GetMux(), closeFn, nil
}

func closeRedis(rc *redis.Client) error {
	if err := rc.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(os.Stdout, cfg.LogLevel)

	handler, closeFn, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: handler}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr, "room_code_store", cfg.RoomCodeStore)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-serverCtx.Done()

	return nil
}
