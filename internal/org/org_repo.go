package org

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=org_repo.go -destination=mock/org_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository
	Create(ctx context.Context, o *Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, o *Organization) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Organization) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Organization, error) {
	var o Organization
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Organization, error) {
	var o Organization
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Organization{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, o *Organization) error {
	return r.db.WithContext(ctx).Save(o).Error
}
