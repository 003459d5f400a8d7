package feedback

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityPrivate = "PRIVATE" // giver, receiver, manager
	VisibilityPublic  = "PUBLIC"  // seluruh anggota organisasi
)

type Feedback struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	GiverID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Content        string    `gorm:"type:text;not null"`

	// Polished adalah versi hasil penyuntingan; NULL sebelum disunting.
	Polished   *string `gorm:"type:text"`
	Visibility string  `gorm:"type:varchar(20);not null;default:'PRIVATE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (f *Feedback) GetOrganizationID() uuid.UUID   { return f.OrganizationID }
func (f *Feedback) SetOrganizationID(id uuid.UUID) { f.OrganizationID = id }
