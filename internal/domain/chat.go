package domain

import "time"

type ChatMessage struct {
	SpeakerName     string    `json:"speakerName"`
	Text            string    `json:"text"`
	Timestamp       time.Time `json:"timestamp"`
	IsSystemMessage bool      `json:"isSystemMessage"`
}

func NewChatMessage(speakerName, text string, at time.Time) ChatMessage {
	return ChatMessage{
		SpeakerName: speakerName,
		Text:        text,
		Timestamp:   at,
	}
}

func NewSystemMessage(text string, at time.Time) ChatMessage {
	return ChatMessage{
		Text:            text,
		Timestamp:       at,
		IsSystemMessage: true,
	}
}
