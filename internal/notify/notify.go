package notify

import "context"

// Message is a single outbound chat message.
type Message struct {
	ChatID   string
	Text     string
	Markdown bool
}

type Notifier interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
