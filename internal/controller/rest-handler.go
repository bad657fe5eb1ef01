package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharetube/watchroom/internal/repository/room"
	roomService "github.com/sharetube/watchroom/internal/service/room"
	"github.com/sharetube/watchroom/pkg/rest"
)

type roomIdPath struct {
	RoomId string `json:"room-id" validate:"required,max=64"`
}

func (c controller) getRoomIdParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	path := roomIdPath{RoomId: chi.URLParam(r, "room-id")}
	if validationErrors, ok := c.validate.Validate(path); !ok {
		c.logger.InfoContext(r.Context(), "invalid room id", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return "", false
	}

	return path.RoomId, true
}

func (c controller) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
	case errors.Is(err, roomService.ErrValidation):
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
	default:
		c.logger.ErrorContext(r.Context(), "request failed", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal error"})
	}
}

func (c controller) createRoom(w http.ResponseWriter, r *http.Request) {
	code, err := c.roomService.CreateRoomCode(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"roomId": code})
}

func (c controller) getRoom(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.getRoomIdParam(w, r)
	if !ok {
		return
	}

	info, err := c.roomService.GetRoomInfo(r.Context(), roomId)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, info)
}

func (c controller) mediaChanged(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.getRoomIdParam(w, r)
	if !ok {
		return
	}

	if err := c.roomService.OnMediaChanged(r.Context(), roomId); err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

func (c controller) subtitlesChanged(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.getRoomIdParam(w, r)
	if !ok {
		return
	}

	if err := c.roomService.OnSubtitlesChanged(r.Context(), roomId); err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

func (c controller) endSession(w http.ResponseWriter, r *http.Request) {
	roomId, ok := c.getRoomIdParam(w, r)
	if !ok {
		return
	}

	if err := c.roomService.EndSession(r.Context(), roomId); err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"success": true})
}

func (c controller) stats(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, c.roomService.Stats())
}
