package inmemory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/watchroom/internal/repository/roomcode"
)

type repo struct {
	codes  map[string]time.Time
	mu     sync.Mutex
	now    func() time.Time
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		codes:  make(map[string]time.Time),
		now:    time.Now,
		logger: logger,
	}
}

// Reserve marks code as issued until ttl elapses. ttl <= 0 never expires.
func (r *repo) Reserve(ctx context.Context, code string, ttl time.Duration) error {
	funcName := "roomcode.inmemory.Reserve"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.DebugContext(ctx, funcName, "code", code, "ttl", ttl)
	if r.aliveLocked(code) {
		r.logger.DebugContext(ctx, funcName, "error", roomcode.ErrCodeTaken)
		return roomcode.ErrCodeTaken
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = r.now().Add(ttl)
	}

	r.codes[code] = expiresAt
	return nil
}

func (r *repo) Exists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.aliveLocked(code), nil
}

func (r *repo) Release(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.DebugContext(ctx, "roomcode.inmemory.Release", "code", code)
	delete(r.codes, code)
	return nil
}

func (r *repo) aliveLocked(code string) bool {
	expiresAt, ok := r.codes[code]
	if !ok {
		return false
	}

	if !expiresAt.IsZero() && !r.now().Before(expiresAt) {
		delete(r.codes, code)
		return false
	}

	return true
}
