package domain

// Message is the chat-platform independent view of an incoming message.
type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "sending_photo"
)
