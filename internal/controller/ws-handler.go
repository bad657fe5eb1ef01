package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchroom/internal/domain"
	"github.com/sharetube/watchroom/internal/service/room"
)

var ErrValidationError = errors.New("validation error")

func (c controller) validateInput(input any) error {
	if validationErrors, ok := c.validate.Validate(input); !ok {
		return fmt.Errorf("%w: %v", ErrValidationError, validationErrors)
	}

	return nil
}

type JoinRoomInput struct {
	RoomId string `json:"roomId" validate:"required"`
	Name   string `json:"name" validate:"required,notblank"`
}

func (c controller) handleJoinRoom(ctx context.Context, _ *websocket.Conn, input JoinRoomInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
		Name:   input.Name,
	}); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	return nil
}

type LeaveRoomInput struct {
	RoomId string `json:"roomId" validate:"required"`
}

func (c controller) handleLeaveRoom(ctx context.Context, _ *websocket.Conn, input LeaveRoomInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.LeaveRoom(ctx, &room.LeaveRoomParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
	}); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	return nil
}

type ChatMessageInput struct {
	RoomId string `json:"roomId" validate:"required"`
	Msg    string `json:"msg" validate:"required,notblank"`
}

func (c controller) handleChatMessage(ctx context.Context, _ *websocket.Conn, input ChatMessageInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.PostMessage(ctx, &room.PostMessageParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
		Text:   input.Msg,
	}); err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}

	return nil
}

type VideoActionInput struct {
	RoomId string                `json:"roomId" validate:"required"`
	Action domain.PlaybackAction `json:"action" validate:"required,oneof=play pause seek"`
	Time   *float64              `json:"time"`
}

func (c controller) handleVideoAction(ctx context.Context, _ *websocket.Conn, input VideoActionInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.PlaybackAction(ctx, &room.PlaybackActionParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
		Action: input.Action,
		Time:   input.Time,
	}); err != nil {
		return fmt.Errorf("failed to relay video action: %w", err)
	}

	return nil
}

type SubtitleChangeInput struct {
	RoomId   string  `json:"roomId" validate:"required"`
	Subtitle *string `json:"subtitle"`
}

func (c controller) handleSubtitleChange(ctx context.Context, _ *websocket.Conn, input SubtitleChangeInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.SetSubtitle(ctx, &room.SetSubtitleParams{
		ConnId:   c.getConnIdFromCtx(ctx),
		RoomId:   input.RoomId,
		Subtitle: input.Subtitle,
	}); err != nil {
		return fmt.Errorf("failed to set subtitle: %w", err)
	}

	return nil
}

type RequestChangeInput struct {
	RoomId string `json:"roomId" validate:"required"`
	Name   string `json:"name"`
}

func (c controller) handleRequestChange(ctx context.Context, _ *websocket.Conn, input RequestChangeInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.RequestChange(ctx, &room.RequestChangeParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
		Name:   input.Name,
	}); err != nil {
		return fmt.Errorf("failed to request change: %w", err)
	}

	return nil
}

type GrantChangeInput struct {
	RoomId      string `json:"roomId" validate:"required"`
	RequesterId string `json:"requesterId" validate:"required"`
}

func (c controller) handleGrantChange(ctx context.Context, _ *websocket.Conn, input GrantChangeInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.GrantChange(ctx, &room.GrantChangeParams{
		ConnId:      c.getConnIdFromCtx(ctx),
		RoomId:      input.RoomId,
		RequesterId: input.RequesterId,
	}); err != nil {
		return fmt.Errorf("failed to grant change: %w", err)
	}

	return nil
}

type DenyRequestInput struct {
	RoomId string `json:"roomId" validate:"required"`
	UserId string `json:"userId" validate:"required"`
}

func (c controller) handleDenyRequest(ctx context.Context, _ *websocket.Conn, input DenyRequestInput) error {
	if err := c.validateInput(input); err != nil {
		return err
	}

	if err := c.roomService.DenyRequest(ctx, &room.DenyRequestParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
		UserId: input.UserId,
	}); err != nil {
		return fmt.Errorf("failed to deny request: %w", err)
	}

	return nil
}
