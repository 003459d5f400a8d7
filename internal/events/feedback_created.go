package events

import "time"

const FeedbackCreatedTopic = "people.feedback.created.v1"

type FeedbackCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	FeedbackID     string    `json:"feedback_id"`
	OrganizationID string    `json:"organization_id"`
	GiverID        string    `json:"giver_id"`
	ReceiverID     string    `json:"receiver_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}
