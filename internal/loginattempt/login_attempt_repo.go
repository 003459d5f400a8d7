package loginattempt

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=login_attempt_repo.go -destination=mock/login_attempt_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, attempt *LoginAttempt) error
	ListFailedByEmailSince(ctx context.Context, email string, since time.Time) ([]LoginAttempt, error)
	CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)
	ListRecentByEmail(ctx context.Context, email string, limit int) ([]LoginAttempt, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, attempt *LoginAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *repository) ListFailedByEmailSince(ctx context.Context, email string, since time.Time) ([]LoginAttempt, error) {
	var attempts []LoginAttempt
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Where("successful = ?", false).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *repository) CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LoginAttempt{}).
		Where("ip_address = ?", ip).
		Where("successful = ?", false).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) ListRecentByEmail(ctx context.Context, email string, limit int) ([]LoginAttempt, error) {
	var attempts []LoginAttempt
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&LoginAttempt{})
	return res.RowsAffected, res.Error
}
