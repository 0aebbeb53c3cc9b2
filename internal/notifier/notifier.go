package notifier

import (
	"context"
	"log"
)

// Notifier delivers a formatted alert text. Delivery is fire-and-forget:
// failures are returned for the caller to log and are never fatal.
type Notifier interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// LogNotifier writes alerts to the process log instead of delivering them.
// Used when Telegram credentials are not configured, so a missing token
// degrades alerting without halting the scan loop.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Send(_ context.Context, text string) error {
	log.Printf("[INFO] alert (telegram not configured):\n%s", text)
	return nil
}
