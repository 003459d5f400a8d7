package events

import "time"

const InvitationCreatedTopic = "people.invitation.created.v1"

type InvitationCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	InvitationID   string    `json:"invitation_id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	InvitedBy      string    `json:"invited_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
