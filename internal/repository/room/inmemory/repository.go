package inmemory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/repository/room"
)

type entry struct {
	room *domain.Room
	// closed is set once the entry left the rooms map, under mu.
	closed bool
	mu     sync.Mutex
}

// repo is the registry of live rooms. Every callback runs with its room locked, so
// operations on one room are serialized while different rooms proceed independently.
type repo struct {
	rooms        map[string]*entry
	membersLimit int
	mu           sync.RWMutex
	logger       *slog.Logger
}

func NewRepo(membersLimit int, logger *slog.Logger) *repo {
	return &repo{
		rooms:        make(map[string]*entry),
		membersLimit: membersLimit,
		logger:       logger,
	}
}

// lock returns the locked entry for roomId, inserting it when create is set.
// The bool reports whether the room is fresh: empty rooms never outlive a release, so the
// first caller to lock an inserted entry sees it empty.
func (r *repo) lock(roomId string, create bool) (*entry, bool, error) {
	for {
		r.mu.Lock()
		e, ok := r.rooms[roomId]
		if !ok {
			if !create {
				r.mu.Unlock()
				return nil, false, room.ErrRoomNotFound
			}

			e = &entry{room: domain.NewRoom(roomId, r.membersLimit)}
			r.rooms[roomId] = e
		}
		r.mu.Unlock()

		e.mu.Lock()
		if e.closed {
			// deleted while we were waiting for it
			e.mu.Unlock()
			continue
		}

		return e, e.room.IsEmpty(), nil
	}
}

// release drops an empty room from the registry and unlocks the entry.
func (r *repo) release(ctx context.Context, e *entry, force bool) {
	defer e.mu.Unlock()

	if !force && !e.room.IsEmpty() {
		return
	}

	e.closed = true
	r.mu.Lock()
	if r.rooms[e.room.Id()] == e {
		delete(r.rooms, e.room.Id())
	}
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "room removed", "room_id", e.room.Id())
}

// GetOrCreate runs fn on the room, creating it when absent. created is true when fn is the
// first to see the room. A room left empty by fn is removed.
func (r *repo) GetOrCreate(ctx context.Context, roomId string, fn func(rm *domain.Room, created bool) error) error {
	funcName := "room.inmemory.GetOrCreate"
	r.logger.DebugContext(ctx, funcName, "room_id", roomId)

	e, created, _ := r.lock(roomId, true)
	defer r.release(ctx, e, false)

	if created {
		r.logger.DebugContext(ctx, "room created", "room_id", roomId)
	}

	return fn(e.room, created)
}

// Get runs fn on an existing room. A room left empty by fn is removed.
func (r *repo) Get(ctx context.Context, roomId string, fn func(rm *domain.Room) error) error {
	funcName := "room.inmemory.Get"
	r.logger.DebugContext(ctx, funcName, "room_id", roomId)

	e, _, err := r.lock(roomId, false)
	if err != nil {
		r.logger.DebugContext(ctx, funcName, "error", err)
		return err
	}
	defer r.release(ctx, e, false)

	return fn(e.room)
}

// Delete runs fn on an existing room and removes it from the registry afterwards,
// whatever fn returns.
func (r *repo) Delete(ctx context.Context, roomId string, fn func(rm *domain.Room) error) error {
	funcName := "room.inmemory.Delete"
	r.logger.DebugContext(ctx, funcName, "room_id", roomId)

	e, _, err := r.lock(roomId, false)
	if err != nil {
		r.logger.DebugContext(ctx, funcName, "error", err)
		return err
	}
	defer r.release(ctx, e, true)

	if fn == nil {
		return nil
	}

	return fn(e.room)
}

func (r *repo) Exists(roomId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomId]
	return ok
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
