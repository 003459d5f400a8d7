package loginattempt

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttempt adalah log append-only per percobaan autentikasi.
// Sengaja TIDAK tenant-scoped: dicatat sebelum identitas organisasi diketahui.
type LoginAttempt struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email      string    `gorm:"type:varchar(255);not null;index:idx_login_attempts_email_created"`
	Successful bool      `gorm:"not null;default:false"`
	IPAddress  string    `gorm:"type:varchar(45);index:idx_login_attempts_ip_created"`
	UserAgent  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index:idx_login_attempts_email_created;index:idx_login_attempts_ip_created"`
}
