package room

import (
	"context"
	"errors"

	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/repository/room"
)

// OnMediaChanged tells every member of the room that a new media file is available.
func (s service) OnMediaChanged(ctx context.Context, roomId string) error {
	return s.notifyRoom(ctx, "room.service.OnMediaChanged", roomId, domain.EventMediaChanged)
}

// OnSubtitlesChanged tells every member of the room that the subtitle list changed.
func (s service) OnSubtitlesChanged(ctx context.Context, roomId string) error {
	return s.notifyRoom(ctx, "room.service.OnSubtitlesChanged", roomId, domain.EventSubtitlesUpdated)
}

func (s service) notifyRoom(ctx context.Context, funcName, roomId, eventType string) error {
	s.logger.DebugContext(ctx, funcName, "room_id", roomId)
	if err := validateRoomId(roomId); err != nil {
		return err
	}

	err := s.roomRepo.Get(ctx, roomId, func(rm *domain.Room) error {
		s.broadcast(ctx, rm, &domain.Message{Type: eventType})
		return nil
	})
	if errors.Is(err, room.ErrRoomNotFound) {
		s.logger.DebugContext(ctx, funcName, "error", err)
		return nil
	}

	return err
}

// EndSession sends session-ended to every member, deletes the room and releases its code.
// Member connections stay open but are no longer bound to the room.
func (s service) EndSession(ctx context.Context, roomId string) error {
	funcName := "room.service.EndSession"
	s.logger.DebugContext(ctx, funcName, "room_id", roomId)
	if err := validateRoomId(roomId); err != nil {
		return err
	}

	err := s.roomRepo.Delete(ctx, roomId, func(rm *domain.Room) error {
		s.broadcast(ctx, rm, &domain.Message{Type: domain.EventSessionEnded})
		for _, connId := range rm.MemberConnIds() {
			s.connRepo.Unbind(connId, roomId)
		}

		s.logger.InfoContext(ctx, "session ended", "room_id", roomId, "members", rm.Length())
		return nil
	})
	if err != nil && !errors.Is(err, room.ErrRoomNotFound) {
		return err
	}

	if err := s.codeStore.Release(ctx, roomId); err != nil {
		s.logger.ErrorContext(ctx, "failed to release room code", "room_id", roomId, "error", err)
		return err
	}

	return nil
}
