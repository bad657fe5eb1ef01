package room

import (
	"context"

	"github.com/sharetube/watchroom/internal/domain"
)

// sendToConn enqueues msg on the connection. A failed enqueue closes the connection; its read
// loop then runs the disconnect path.
func (s service) sendToConn(ctx context.Context, connId string, msg *domain.Message) {
	conn, err := s.connRepo.GetConn(connId)
	if err != nil {
		s.logger.DebugContext(ctx, "skipping send to missing connection", "connection_id", connId, "type", msg.Type)
		return
	}

	if err := conn.Send(msg); err != nil {
		s.logger.InfoContext(ctx, "failed to send message, closing connection", "connection_id", connId, "type", msg.Type, "error", err)
		conn.Close()
	}
}

func (s service) sendToMembers(ctx context.Context, rm *domain.Room, msg *domain.Message, exceptConnId string) {
	for _, connId := range rm.MemberConnIds() {
		if connId == exceptConnId {
			continue
		}

		s.sendToConn(ctx, connId, msg)
	}
}

func (s service) broadcast(ctx context.Context, rm *domain.Room, msg *domain.Message) {
	s.sendToMembers(ctx, rm, msg, "")
}

func (s service) appendAndBroadcastSystemMessage(ctx context.Context, rm *domain.Room, text string, exceptConnId string) {
	chatMessage := domain.NewSystemMessage(text, s.now())
	rm.AppendChat(chatMessage)
	s.sendToMembers(ctx, rm, &domain.Message{
		Type:    domain.EventChatMessage,
		Payload: chatMessage,
	}, exceptConnId)
}

func (s service) sendUsersUpdated(ctx context.Context, rm *domain.Room) {
	s.broadcast(ctx, rm, &domain.Message{
		Type:    domain.EventUsersUpdated,
		Payload: rm.Members(),
	})
}

func (s service) sendAdminStatus(ctx context.Context, connId string, isAdmin bool) {
	s.sendToConn(ctx, connId, &domain.Message{
		Type:    domain.EventAdminStatus,
		Payload: AdminStatus{IsAdminUser: isAdmin},
	})
}
