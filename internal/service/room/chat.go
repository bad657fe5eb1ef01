package room

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sharetube/watchroom/internal/domain"
)

type PostMessageParams struct {
	ConnId string
	RoomId string
	Text   string
}

// PostMessage appends a chat message to the room history and broadcasts it to every member,
// the sender included.
func (s service) PostMessage(ctx context.Context, params *PostMessageParams) error {
	funcName := "room.service.PostMessage"
	s.logger.DebugContext(ctx, funcName, "params", params)
	if err := validationError(validation.Validate(params.Text, s.chatTextRule()...)); err != nil {
		s.logger.InfoContext(ctx, "invalid chat message", "error", err)
		return err
	}

	return s.roomRepo.Get(ctx, params.RoomId, func(rm *domain.Room) error {
		member, err := rm.GetMember(params.ConnId)
		if err != nil {
			s.logger.InfoContext(ctx, funcName, "error", ErrNotInRoom, "room_id", params.RoomId)
			return ErrNotInRoom
		}

		chatMessage := domain.NewChatMessage(member.Name, params.Text, s.now())
		rm.AppendChat(chatMessage)
		s.broadcast(ctx, rm, &domain.Message{
			Type:    domain.EventChatMessage,
			Payload: chatMessage,
		})

		return nil
	})
}
