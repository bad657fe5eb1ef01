package domain

// Conn is the outbound half of a participant's transport connection.
// Send must not block: implementations queue the message or fail.
type Conn interface {
	Id() string
	Send(msg *Message) error
	Close() error
}

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}
