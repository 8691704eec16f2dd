package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventQueueJoined EventType = "queue-joined"
	EventQueueLeft   EventType = "queue-left"
)

// QueueEvent is the payload published on every queue transition.
type QueueEvent struct {
	UserID      string `msgpack:"user_id"`
	UserName    string `msgpack:"user_name"`
	BracketID   string `msgpack:"bracket_id"`
	EntryID     string `msgpack:"entry_id,omitempty"`
	PlayerID    string `msgpack:"player_id,omitempty"`
	Deactivated int64  `msgpack:"deactivated,omitempty"`
}
