package tenant

import (
	"context"

	"gorm.io/gorm"
)

// Scope membatasi query ke satu organisasi secara eksplisit.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// ScopeFromContext mengambil tenant aktif dari context.
// Tanpa tenant, query lewat tanpa filter (tanggung jawab caller non-request).
func ScopeFromContext(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tc := FromContextOrNil(ctx); tc != nil {
			return db.Where("organization_id = ?", tc.OrganizationID)
		}
		return db
	}
}
