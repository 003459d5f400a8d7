package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindFeedbackReceived = "FEEDBACK_RECEIVED"
	KindAbsenceReviewed  = "ABSENCE_REVIEWED"
	KindInvitationSent   = "INVITATION_SENT"
)

// Notification dibuat oleh consumer dari event Kafka, bukan oleh request
// HTTP yang memicunya.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind           string    `gorm:"type:varchar(50);not null"`
	Message        string    `gorm:"type:text;not null"`
	ReadAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (n *Notification) GetOrganizationID() uuid.UUID   { return n.OrganizationID }
func (n *Notification) SetOrganizationID(id uuid.UUID) { n.OrganizationID = id }
