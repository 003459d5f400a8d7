package notification

import (
	"context"
	"time"

	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Notification, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error)
}

type repository struct {
	store *tenant.Store[Notification, *Notification]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[Notification, *Notification](db)}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[Notification, *Notification](db)}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.store.Create(ctx, n)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Notification, error) {
	return r.store.FindMany(ctx,
		tenant.Where("user_id = ?", userID),
		tenant.Order("created_at DESC"),
		tenant.Limit(limit),
		tenant.Offset(offset),
	)
}

func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.Count(ctx, tenant.Where("user_id = ?", userID))
}

func (r *repository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.store.Count(ctx,
		tenant.Where("user_id = ?", userID),
		tenant.Where("read_at IS NULL"),
	)
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.store.Update(ctx, n)
}

func (r *repository) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	return r.store.UpdateMany(ctx,
		map[string]any{"read_at": readAt},
		tenant.Where("user_id = ?", userID),
		tenant.Where("read_at IS NULL"),
	)
}
