package invitation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRevoked  = "REVOKED"
)

// Undangan berumur tetap; expiry disimpan di row DAN di token supaya
// keduanya bisa diverifikasi independen.
const TTL = 7 * 24 * time.Hour

type Invitation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email          string    `gorm:"type:varchar(255);not null;index"`
	Role           string    `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING'"`

	// Token JWT yang dikirim ke calon anggota; disimpan untuk audit,
	// verifikasi accept tetap lewat signature.
	Token string `gorm:"type:text;not null"`

	InvitedBy  uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	AcceptedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (i *Invitation) GetOrganizationID() uuid.UUID   { return i.OrganizationID }
func (i *Invitation) SetOrganizationID(id uuid.UUID) { i.OrganizationID = id }

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
