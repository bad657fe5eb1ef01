package room

import (
	"context"
	"fmt"

	"github.com/sharetube/watchroom/internal/domain"
)

type PlaybackActionParams struct {
	ConnId string
	RoomId string
	Action domain.PlaybackAction
	Time   *float64
}

// PlaybackAction relays a playback control to every other member. No room state changes.
func (s service) PlaybackAction(ctx context.Context, params *PlaybackActionParams) error {
	funcName := "room.service.PlaybackAction"
	s.logger.DebugContext(ctx, funcName, "params", params)
	if !params.Action.IsValid() {
		err := fmt.Errorf("%w: unknown action %q", ErrValidation, params.Action)
		s.logger.InfoContext(ctx, funcName, "error", err)
		return err
	}

	if params.Action == domain.PlaybackActionSeek && params.Time == nil {
		err := fmt.Errorf("%w: seek requires time", ErrValidation)
		s.logger.InfoContext(ctx, funcName, "error", err)
		return err
	}

	return s.roomRepo.Get(ctx, params.RoomId, func(rm *domain.Room) error {
		if !rm.HasMember(params.ConnId) {
			s.logger.InfoContext(ctx, funcName, "error", ErrNotInRoom, "room_id", params.RoomId)
			return ErrNotInRoom
		}

		s.sendToMembers(ctx, rm, &domain.Message{
			Type: domain.EventVideoAction,
			Payload: VideoAction{
				Action: params.Action,
				Time:   params.Time,
			},
		}, params.ConnId)

		return nil
	})
}
