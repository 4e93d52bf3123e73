// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the activity.events queue.
const (
    EventActivityCreated = "activity.created"
    EventActivityJoined  = "activity.joined"
    EventActivityLeft    = "activity.left"
    EventActivityDeleted = "activity.deleted"
)

// ActivityEvent is published after a successful feed mutation. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
    Type       string `json:"type"`
    ActivityID uint64 `json:"activity_id"`
    Title      string `json:"title,omitempty"`
    Username   string `json:"username"`
    OccurredAt string `json:"occurred_at"`
}
