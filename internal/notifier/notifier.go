package notifier

import (
	"github.com/mauv0809/urban-bracket/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// A user entered a bracket's waiting queue.
	SendQueueJoined(event pubsub.QueueEvent, dryRun bool) error
	// A user left a bracket's waiting queue.
	SendQueueLeft(event pubsub.QueueEvent, dryRun bool) error
}
