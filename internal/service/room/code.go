package room

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/repository/room"
	"github.com/sharetube/watchroom/internal/repository/roomcode"
)

const (
	roomCodeAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomCodeLength     = 6
	roomCodeMaxRetries = 5
)

func generateRoomCode() (string, error) {
	return gonanoid.Generate(roomCodeAlphabet, roomCodeLength)
}

// CreateRoomCode issues a fresh room code. The room itself is created on first join.
func (s service) CreateRoomCode(ctx context.Context) (string, error) {
	funcName := "room.service.CreateRoomCode"
	for attempt := 0; attempt < roomCodeMaxRetries; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			s.logger.ErrorContext(ctx, funcName, "error", err)
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}

		if s.roomRepo.Exists(code) {
			s.logger.DebugContext(ctx, "room code used by active room", "code", code)
			continue
		}

		err = s.codeStore.Reserve(ctx, code, s.config.RoomCodeTTL)
		if errors.Is(err, roomcode.ErrCodeTaken) {
			s.logger.DebugContext(ctx, "room code already issued", "code", code)
			continue
		}

		if err != nil {
			return "", err
		}

		s.logger.InfoContext(ctx, "room code issued", "code", code)
		return code, nil
	}

	s.logger.ErrorContext(ctx, funcName, "error", ErrCodeExhausted)
	return "", ErrCodeExhausted
}

// GetRoomInfo reports whether roomId is active or issued. It returns room.ErrRoomNotFound when it
// is neither.
func (s service) GetRoomInfo(ctx context.Context, roomId string) (RoomInfo, error) {
	funcName := "room.service.GetRoomInfo"
	s.logger.DebugContext(ctx, funcName, "room_id", roomId)
	if err := validateRoomId(roomId); err != nil {
		return RoomInfo{}, err
	}

	info := RoomInfo{
		RoomId:  roomId,
		Members: []domain.Member{},
	}
	err := s.roomRepo.Get(ctx, roomId, func(rm *domain.Room) error {
		info.Active = true
		info.Members = rm.Members()
		return nil
	})
	if err != nil && !errors.Is(err, room.ErrRoomNotFound) {
		return RoomInfo{}, err
	}

	issued, err := s.codeStore.Exists(ctx, roomId)
	if err != nil {
		return RoomInfo{}, err
	}
	info.Issued = issued

	if !info.Active && !info.Issued {
		return RoomInfo{}, room.ErrRoomNotFound
	}

	return info, nil
}

func (s service) Stats() Stats {
	return Stats{
		Rooms:       s.roomRepo.Count(),
		Connections: s.connRepo.Count(),
	}
}
