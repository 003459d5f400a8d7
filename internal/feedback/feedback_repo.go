package feedback

import (
	"context"

	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=feedback_repo.go -destination=mock/feedback_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository
	Create(ctx context.Context, f *Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	FindAll(ctx context.Context) ([]Feedback, error)
	FindByReceiver(ctx context.Context, receiverID uuid.UUID) ([]Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	store *tenant.Store[Feedback, *Feedback]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[Feedback, *Feedback](db)}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[Feedback, *Feedback](db)}
}

func (r *repository) Create(ctx context.Context, f *Feedback) error {
	return r.store.Create(ctx, f)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repository) FindAll(ctx context.Context) ([]Feedback, error) {
	return r.store.FindMany(ctx, tenant.Order("created_at DESC"))
}

func (r *repository) FindByReceiver(ctx context.Context, receiverID uuid.UUID) ([]Feedback, error) {
	return r.store.FindMany(ctx,
		tenant.Where("receiver_id = ?", receiverID),
		tenant.Order("created_at DESC"),
	)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
