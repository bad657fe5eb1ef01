package room

import "github.com/sharetube/watchroom/internal/domain"

type AdminStatus struct {
	IsAdminUser bool `json:"isAdminUser"`
}

type SubtitleState struct {
	Subtitle *string `json:"subtitle"`
}

type VideoAction struct {
	Action domain.PlaybackAction `json:"action"`
	Time   *float64              `json:"time,omitempty"`
}

type ChangeRequest struct {
	From        string `json:"from"`
	RequesterId string `json:"requesterId"`
}

type RoomInfo struct {
	RoomId  string          `json:"roomId"`
	Active  bool            `json:"active"`
	Issued  bool            `json:"issued"`
	Members []domain.Member `json:"members"`
}

type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}
