package notify

import (
	"context"
	"log"
)

// LogNotifier implements Notifier by logging messages to stdout.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	log.Printf("📧 [Dev Mode] email to %s: %s", msg.To, msg.Subject)
	return nil
}
