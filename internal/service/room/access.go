package room

import (
	"context"

	"github.com/sharetube/watchroom/internal/domain"
)

type RequestChangeParams struct {
	ConnId string
	RoomId string
	Name   string
}

// RequestChange forwards a control request to the room admin. Requests from the admin itself or
// into a room without an admin are dropped.
func (s service) RequestChange(ctx context.Context, params *RequestChangeParams) error {
	funcName := "room.service.RequestChange"
	s.logger.DebugContext(ctx, funcName, "params", params)

	return s.roomRepo.Get(ctx, params.RoomId, func(rm *domain.Room) error {
		member, err := rm.GetMember(params.ConnId)
		if err != nil {
			s.logger.InfoContext(ctx, funcName, "error", ErrNotInRoom, "room_id", params.RoomId)
			return ErrNotInRoom
		}

		if !rm.HasAdmin() || rm.IsAdmin(params.ConnId) {
			s.logger.DebugContext(ctx, "change request dropped", "room_id", params.RoomId)
			return nil
		}

		from := params.Name
		if from == "" {
			from = member.Name
		}

		s.sendToConn(ctx, rm.AdminId(), &domain.Message{
			Type: domain.EventChangeRequest,
			Payload: ChangeRequest{
				From:        from,
				RequesterId: params.ConnId,
			},
		})

		return nil
	})
}

type GrantChangeParams struct {
	ConnId      string
	RoomId      string
	RequesterId string
}

// GrantChange tells the requester it may take control. The room admin is not changed.
func (s service) GrantChange(ctx context.Context, params *GrantChangeParams) error {
	funcName := "room.service.GrantChange"
	s.logger.DebugContext(ctx, funcName, "params", params)

	return s.replyToRequester(ctx, params.ConnId, params.RoomId, params.RequesterId, domain.EventChangeGranted)
}

type DenyRequestParams struct {
	ConnId string
	RoomId string
	UserId string
}

func (s service) DenyRequest(ctx context.Context, params *DenyRequestParams) error {
	funcName := "room.service.DenyRequest"
	s.logger.DebugContext(ctx, funcName, "params", params)

	return s.replyToRequester(ctx, params.ConnId, params.RoomId, params.UserId, domain.EventRequestDenied)
}

func (s service) replyToRequester(ctx context.Context, senderId, roomId, targetId, eventType string) error {
	msg := &domain.Message{Type: eventType}
	if !s.config.StrictAccessControl {
		s.sendToConn(ctx, targetId, msg)
		return nil
	}

	return s.roomRepo.Get(ctx, roomId, func(rm *domain.Room) error {
		if !rm.IsAdmin(senderId) {
			s.logger.InfoContext(ctx, "access reply rejected", "error", ErrPermissionDenied, "room_id", roomId, "type", eventType)
			return ErrPermissionDenied
		}

		s.sendToConn(ctx, targetId, msg)
		return nil
	})
}
