package tenant

import (
	"context"

	"go-peoplehub/internal/shared/apperror"

	"github.com/google/uuid"
)

// Context adalah identitas organisasi aktif untuk satu request.
// Nilai ini hidup di context.Context request (terisolasi per request oleh
// runtime, tidak pernah jadi variabel global) dan dibuang saat request selesai.
type Context struct {
	OrganizationID uuid.UUID
	Slug           string
	Name           string
}

type ctxKey struct{}

// WithContext mengikat tenant ke context. Pemanggilan bersarang cukup
// menurunkan context baru; binding luar otomatis pulih saat scope selesai.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext dipakai oleh write path: tanpa tenant aktif adalah
// authorization error, bukan sekadar query tanpa filter.
func FromContext(ctx context.Context) (Context, error) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	if !ok || tc.OrganizationID == uuid.Nil {
		return Context{}, apperror.ErrNoTenant
	}
	return tc, nil
}

// FromContextOrNil dipakai oleh read path: filter ambient bersifat opsional.
// Caller di luar request scope (background job) wajib membawa scoping sendiri.
func FromContextOrNil(ctx context.Context) *Context {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	if !ok || tc.OrganizationID == uuid.Nil {
		return nil
	}
	return &tc
}
