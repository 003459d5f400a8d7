package absence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeVacation = "VACATION"
	TypeSick     = "SICK"
	TypePersonal = "PERSONAL"
	TypeUnpaid   = "UNPAID"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type AbsenceRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"type:varchar(20);not null"`
	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	TotalDays      int       `gorm:"not null"`
	Reason         string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'"`

	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (a *AbsenceRequest) GetOrganizationID() uuid.UUID   { return a.OrganizationID }
func (a *AbsenceRequest) SetOrganizationID(id uuid.UUID) { a.OrganizationID = id }

// isAllowedStatusTransition: PENDING adalah satu-satunya state hidup.
// APPROVED/REJECTED/CANCELLED final.
func isAllowedStatusTransition(current, target string) bool {
	if current != StatusPending {
		return false
	}
	switch target {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
