package invitation

import (
	"context"
	"strings"

	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invitation_repo.go -destination=mock/invitation_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository

	Create(ctx context.Context, inv *Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	FindAll(ctx context.Context) ([]Invitation, error)
	Update(ctx context.Context, inv *Invitation) error
	HasPendingForEmail(ctx context.Context, email string) (bool, error)

	// GetByIDGlobal dipakai endpoint accept yang publik: belum ada tenant di
	// context, scoping diverifikasi lewat claims token setelah fetch.
	GetByIDGlobal(ctx context.Context, id uuid.UUID) (*Invitation, error)
}

type repository struct {
	db    *gorm.DB
	store *tenant.Store[Invitation, *Invitation]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, store: tenant.NewStore[Invitation, *Invitation](db)}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{db: db, store: tenant.NewStore[Invitation, *Invitation](db)}
}

func (r *repository) Create(ctx context.Context, inv *Invitation) error {
	inv.Email = strings.ToLower(inv.Email)
	return r.store.Create(ctx, inv)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repository) FindAll(ctx context.Context) ([]Invitation, error) {
	return r.store.FindMany(ctx, tenant.Order("created_at DESC"))
}

func (r *repository) Update(ctx context.Context, inv *Invitation) error {
	return r.store.Update(ctx, inv)
}

func (r *repository) HasPendingForEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.store.Count(ctx,
		tenant.Where("email = ?", strings.ToLower(email)),
		tenant.Where("status = ?", StatusPending),
	)
	return count > 0, err
}

func (r *repository) GetByIDGlobal(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	var inv Invitation
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
