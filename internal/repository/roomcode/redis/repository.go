package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/watchroom/internal/repository/roomcode"
)

type repo struct {
	rc     *redis.Client
	logger *slog.Logger
}

func NewRepo(rc *redis.Client, logger *slog.Logger) *repo {
	return &repo{
		rc:     rc,
		logger: logger,
	}
}

func (r repo) getCodeKey(code string) string {
	return "room-code:" + code
}

// Reserve stores code with ttl. ttl <= 0 never expires.
func (r repo) Reserve(ctx context.Context, code string, ttl time.Duration) error {
	funcName := "roomcode.redis.Reserve"
	r.logger.DebugContext(ctx, funcName, "code", code, "ttl", ttl)
	if ttl < 0 {
		ttl = 0
	}

	ok, err := r.rc.SetNX(ctx, r.getCodeKey(code), time.Now().Unix(), ttl).Result()
	if err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to reserve room code: %w", err)
	}

	if !ok {
		r.logger.DebugContext(ctx, funcName, "error", roomcode.ErrCodeTaken)
		return roomcode.ErrCodeTaken
	}

	return nil
}

func (r repo) Exists(ctx context.Context, code string) (bool, error) {
	n, err := r.rc.Exists(ctx, r.getCodeKey(code)).Result()
	if err != nil {
		r.logger.ErrorContext(ctx, "roomcode.redis.Exists", "error", err)
		return false, fmt.Errorf("failed to check room code: %w", err)
	}

	return n > 0, nil
}

func (r repo) Release(ctx context.Context, code string) error {
	funcName := "roomcode.redis.Release"
	r.logger.DebugContext(ctx, funcName, "code", code)
	if err := r.rc.Del(ctx, r.getCodeKey(code)).Err(); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to release room code: %w", err)
	}

	return nil
}
