package room

import (
	"context"

	"github.com/sharetube/watchroom/internal/domain"
)

type SetSubtitleParams struct {
	ConnId   string
	RoomId   string
	Subtitle *string
}

// SetSubtitle stores the room's subtitle selection and relays it to every other member.
// A nil subtitle clears the selection.
func (s service) SetSubtitle(ctx context.Context, params *SetSubtitleParams) error {
	funcName := "room.service.SetSubtitle"
	s.logger.DebugContext(ctx, funcName, "params", params)

	return s.roomRepo.Get(ctx, params.RoomId, func(rm *domain.Room) error {
		if !rm.HasMember(params.ConnId) {
			s.logger.InfoContext(ctx, funcName, "error", ErrNotInRoom, "room_id", params.RoomId)
			return ErrNotInRoom
		}

		rm.SetSubtitle(params.Subtitle)
		s.sendToMembers(ctx, rm, &domain.Message{
			Type:    domain.EventSubtitleChange,
			Payload: SubtitleState{Subtitle: rm.Subtitle()},
		}, params.ConnId)

		return nil
	})
}
