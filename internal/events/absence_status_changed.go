package events

import "time"

const AbsenceStatusChangedTopic = "people.absence.status.v1"

type AbsenceStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	AbsenceID      string    `json:"absence_id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	ReviewerID     string    `json:"reviewer_id,omitempty"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
