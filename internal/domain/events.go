package domain

// inbound
const (
	EventJoinRoom       = "join-room"
	EventLeaveRoom      = "leave-room"
	EventRequestChange  = "request-change"
	EventGrantChange    = "grant-change"
	EventDenyRequest    = "deny-request"
	EventChatMessage    = "chat-message"
	EventVideoAction    = "video-action"
	EventSubtitleChange = "subtitle-change"
)

// outbound only
const (
	EventChatHistory      = "chat-history"
	EventUsersUpdated     = "users-updated"
	EventAdminStatus      = "admin-status"
	EventChangeRequest    = "change-request"
	EventChangeGranted    = "change-granted"
	EventRequestDenied    = "request-denied"
	EventSessionEnded     = "session-ended"
	EventMediaChanged     = "media-changed"
	EventSubtitlesUpdated = "subtitles-updated"
)

type PlaybackAction string

const (
	PlaybackActionPlay  PlaybackAction = "play"
	PlaybackActionPause PlaybackAction = "pause"
	PlaybackActionSeek  PlaybackAction = "seek"
)

func (a PlaybackAction) IsValid() bool {
	switch a {
	case PlaybackActionPlay, PlaybackActionPause, PlaybackActionSeek:
		return true
	}

	return false
}
