package room

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sharetube/watchroom/internal/domain"
)

func (s service) Connect(ctx context.Context, conn domain.Conn) error {
	funcName := "room.service.Connect"
	s.logger.DebugContext(ctx, funcName, "connection_id", conn.Id())
	if err := s.connRepo.Add(conn); err != nil {
		s.logger.InfoContext(ctx, "failed to add connection", "error", err)
		return fmt.Errorf("failed to add connection: %w", err)
	}

	return nil
}

type JoinRoomParams struct {
	ConnId string
	RoomId string
	Name   string
}

func (p JoinRoomParams) validate(s service) error {
	return validationError(validation.ValidateStruct(&p,
		validation.Field(&p.RoomId, roomIdRule...),
		validation.Field(&p.Name, s.nameRule()...),
	))
}

func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) error {
	funcName := "room.service.JoinRoom"
	s.logger.DebugContext(ctx, funcName, "params", params)
	if err := params.validate(s); err != nil {
		s.logger.InfoContext(ctx, "invalid join params", "error", err)
		return err
	}

	session, err := s.connRepo.Get(params.ConnId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get connection session", "error", err)
		return err
	}

	if session.RoomId == params.RoomId {
		s.logger.DebugContext(ctx, "already in room", "room_id", params.RoomId)
		return nil
	}

	if session.RoomId != "" {
		s.leave(ctx, params.ConnId, session.RoomId)
	}

	return s.roomRepo.GetOrCreate(ctx, params.RoomId, func(rm *domain.Room, created bool) error {
		if err := rm.AddMember(domain.Member{ConnId: params.ConnId, Name: params.Name}); err != nil {
			s.logger.InfoContext(ctx, "failed to add member", "room_id", params.RoomId, "error", err)
			return fmt.Errorf("failed to add member: %w", err)
		}

		if err := s.connRepo.Bind(params.ConnId, params.RoomId, params.Name); err != nil {
			rm.RemoveMember(params.ConnId)
			s.logger.InfoContext(ctx, "failed to bind connection", "error", err)
			return fmt.Errorf("failed to bind connection: %w", err)
		}

		if created {
			rm.SetAdmin(params.ConnId)
		}

		history := rm.ChatHistory()
		if rm.Length() > 1 {
			s.appendAndBroadcastSystemMessage(ctx, rm, params.Name+" joined the room", params.ConnId)
		}

		s.sendToConn(ctx, params.ConnId, &domain.Message{
			Type:    domain.EventChatHistory,
			Payload: history,
		})
		if subtitle := rm.Subtitle(); subtitle != nil {
			s.sendToConn(ctx, params.ConnId, &domain.Message{
				Type:    domain.EventSubtitleChange,
				Payload: SubtitleState{Subtitle: subtitle},
			})
		}
		s.sendAdminStatus(ctx, params.ConnId, rm.IsAdmin(params.ConnId))
		s.sendUsersUpdated(ctx, rm)

		s.logger.InfoContext(ctx, "member joined", "room_id", params.RoomId, "created", created, "members", rm.Length())
		return nil
	})
}

type LeaveRoomParams struct {
	ConnId string
	RoomId string
}

// LeaveRoom removes the connection from RoomId. Naming a room the connection is not in is a no-op.
func (s service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) error {
	funcName := "room.service.LeaveRoom"
	s.logger.DebugContext(ctx, funcName, "params", params)

	session, err := s.connRepo.Get(params.ConnId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get connection session", "error", err)
		return err
	}

	if session.RoomId == "" || session.RoomId != params.RoomId {
		s.logger.DebugContext(ctx, funcName, "error", ErrNotInRoom, "room_id", params.RoomId)
		return nil
	}

	s.leave(ctx, params.ConnId, params.RoomId)
	return nil
}

// Disconnect drops the connection session and runs leave for the room it was bound to.
func (s service) Disconnect(ctx context.Context, connId string) {
	funcName := "room.service.Disconnect"
	s.logger.DebugContext(ctx, funcName, "connection_id", connId)

	session, err := s.connRepo.Remove(connId)
	if err != nil {
		s.logger.DebugContext(ctx, funcName, "error", err)
		return
	}

	if session.RoomId == "" {
		return
	}

	s.leave(ctx, connId, session.RoomId)
}

func (s service) leave(ctx context.Context, connId, roomId string) {
	s.connRepo.Unbind(connId, roomId)

	err := s.roomRepo.Get(ctx, roomId, func(rm *domain.Room) error {
		member, err := rm.RemoveMember(connId)
		if err != nil {
			return err
		}

		if !rm.IsEmpty() && member.Name != "" {
			s.appendAndBroadcastSystemMessage(ctx, rm, member.Name+" left the room", "")
		}

		if rm.AdminId() == connId {
			if successor, ok := rm.ReassignAdmin(); ok {
				s.sendAdminStatus(ctx, successor.ConnId, true)
				s.appendAndBroadcastSystemMessage(ctx, rm, successor.Name+" is now the room admin", "")
				s.logger.InfoContext(ctx, "admin reassigned", "room_id", roomId, "admin_id", successor.ConnId)
			}
		}

		s.sendUsersUpdated(ctx, rm)
		s.logger.InfoContext(ctx, "member left", "room_id", roomId, "members", rm.Length())
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		s.logger.DebugContext(ctx, "leave skipped", "room_id", roomId, "error", err)
	}
}
