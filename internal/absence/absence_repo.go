package absence

import (
	"context"
	"time"

	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository
	Create(ctx context.Context, a *AbsenceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*AbsenceRequest, error)
	FindAll(ctx context.Context) ([]AbsenceRequest, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]AbsenceRequest, error)
	Update(ctx context.Context, a *AbsenceRequest) error
	HasOverlappingPeriod(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	store *tenant.Store[AbsenceRequest, *AbsenceRequest]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[AbsenceRequest, *AbsenceRequest](db)}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{store: tenant.NewStore[AbsenceRequest, *AbsenceRequest](db)}
}

func (r *repository) Create(ctx context.Context, a *AbsenceRequest) error {
	return r.store.Create(ctx, a)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*AbsenceRequest, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repository) FindAll(ctx context.Context) ([]AbsenceRequest, error) {
	return r.store.FindMany(ctx, tenant.Order("start_date DESC"))
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]AbsenceRequest, error) {
	return r.store.FindMany(ctx,
		tenant.Where("user_id = ?", userID),
		tenant.Order("start_date DESC"),
	)
}

func (r *repository) Update(ctx context.Context, a *AbsenceRequest) error {
	return r.store.Update(ctx, a)
}

// HasOverlappingPeriod menghitung request hidup (bukan CANCELLED/REJECTED)
// milik user yang periodenya beririsan dengan [startDate, endDate].
func (r *repository) HasOverlappingPeriod(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
	opts := []tenant.QueryOption{
		tenant.Where("user_id = ?", userID),
		tenant.Where("status NOT IN ?", []string{StatusCancelled, StatusRejected}),
		tenant.Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate),
	}
	if excludeID != nil {
		opts = append(opts, tenant.Where("id <> ?", *excludeID))
	}

	count, err := r.store.Count(ctx, opts...)
	return count > 0, err
}
