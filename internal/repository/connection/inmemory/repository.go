package inmemory

import (
	"log/slog"
	"sync"

	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/repository/connection"
)

type repo struct {
	sessions map[string]*connection.Session
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		sessions: make(map[string]*connection.Session),
		logger:   logger,
	}
}

func (r *repo) Add(conn domain.Conn) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "connection_id", conn.Id())
	if _, ok := r.sessions[conn.Id()]; ok {
		r.logger.Info(funcName, "error", connection.ErrAlreadyExists)
		return connection.ErrAlreadyExists
	}

	r.sessions[conn.Id()] = &connection.Session{Conn: conn}
	return nil
}

func (r *repo) Remove(connId string) (connection.Session, error) {
	funcName := "connection.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "connection_id", connId)
	session, ok := r.sessions[connId]
	if !ok {
		r.logger.Debug(funcName, "error", connection.ErrNotFound)
		return connection.Session{}, connection.ErrNotFound
	}

	delete(r.sessions, connId)
	return *session, nil
}

func (r *repo) Get(connId string) (connection.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[connId]
	if !ok {
		return connection.Session{}, connection.ErrNotFound
	}

	return *session, nil
}

func (r *repo) GetConn(connId string) (domain.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[connId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return session.Conn, nil
}

// Bind records that connId joined roomId as name.
func (r *repo) Bind(connId, roomId, name string) error {
	funcName := "connection.inmemory.Bind"
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connId]
	if !ok {
		r.logger.Debug(funcName, "error", connection.ErrNotFound, "connection_id", connId)
		return connection.ErrNotFound
	}

	session.RoomId = roomId
	session.Name = name
	r.logger.Debug(funcName, "connection_id", connId, "room_id", roomId)
	return nil
}

// Unbind clears the room binding if connId is still bound to roomId.
func (r *repo) Unbind(connId, roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connId]
	if !ok || session.RoomId != roomId {
		return
	}

	session.RoomId = ""
	r.logger.Debug("connection.inmemory.Unbind", "connection_id", connId, "room_id", roomId)
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
