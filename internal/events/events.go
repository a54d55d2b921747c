package events

import "context"

// Event types
const (
	EventAdRequestStatusChanged = "ad_request_status_changed"
	EventAdRequestUpdated       = "ad_request_updated"
	EventMessageCreated         = "message_created"
)

// StreamAdRequests is the pub/sub channel for workflow notifications.
const StreamAdRequests = "events:ad_requests"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
