package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"` // unit isolasi tenant
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	AvatarURL      string    `gorm:"type:text"`

	// PasswordHash NULL untuk akun OAuth-only
	PasswordHash *string `gorm:"type:text"`

	// Link akun OAuth (satu provider per user sudah cukup untuk saat ini)
	Provider   *string `gorm:"type:varchar(50);index:idx_users_provider_identity"`
	ProviderID *string `gorm:"type:varchar(255);index:idx_users_provider_identity"`

	// Token provider dari link/onboarding terakhir; id token tidak disimpan
	// karena hanya bukti autentikasi sesaat
	ProviderAccessToken  *string `gorm:"type:text"`
	ProviderRefreshToken *string `gorm:"type:text"`

	EmailVerifiedAt *time.Time
	IsActive        bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (u *User) GetOrganizationID() uuid.UUID   { return u.OrganizationID }
func (u *User) SetOrganizationID(id uuid.UUID) { u.OrganizationID = id }
