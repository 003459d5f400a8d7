package org_test

import (
	"context"
	"testing"

	"go-peoplehub/internal/org"
	orgerrors "go-peoplehub/internal/org/errors"
	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeOrgRepo struct {
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*org.Organization, error)
	existsBySlugFn func(ctx context.Context, slug string) (bool, error)
	updateFn       func(ctx context.Context, o *org.Organization) error
}

func (f *fakeOrgRepo) WithDB(db *gorm.DB) org.Repository                     { return f }
func (f *fakeOrgRepo) Create(ctx context.Context, o *org.Organization) error { return nil }

func (f *fakeOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*org.Organization, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgRepo) GetBySlug(ctx context.Context, slug string) (*org.Organization, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if f.existsBySlugFn != nil {
		return f.existsBySlugFn(ctx, slug)
	}
	return false, nil
}

func (f *fakeOrgRepo) Update(ctx context.Context, o *org.Organization) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, o)
	}
	return nil
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("free slug used as-is", func(t *testing.T) {
		got, err := org.UniqueSlug(ctx, &fakeOrgRepo{}, "Akme Indonesia")
		assert.NoError(t, err)
		assert.Equal(t, "akme-indonesia", got)
	})

	t.Run("taken slug gets numeric suffix", func(t *testing.T) {
		taken := map[string]bool{"akme": true, "akme-2": true}
		repo := &fakeOrgRepo{existsBySlugFn: func(ctx context.Context, slug string) (bool, error) {
			return taken[slug], nil
		}}

		got, err := org.UniqueSlug(ctx, repo, "Akme")
		assert.NoError(t, err)
		assert.Equal(t, "akme-3", got)
	})

	t.Run("name without slug material rejected", func(t *testing.T) {
		_, err := org.UniqueSlug(ctx, &fakeOrgRepo{}, "!!!")
		assert.ErrorIs(t, err, orgerrors.ErrInvalidOrganizationName)
	})
}

func TestOrgService_Update(t *testing.T) {
	orgID := uuid.New()
	ctx := tenant.WithContext(context.Background(), tenant.Context{
		OrganizationID: orgID,
		Slug:           "akme",
		Name:           "Akme",
	})

	current := &org.Organization{ID: orgID, Name: "Akme", Slug: "akme"}

	t.Run("name changes, slug stays", func(t *testing.T) {
		var saved *org.Organization
		repo := &fakeOrgRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*org.Organization, error) {
				o := *current
				return &o, nil
			},
			updateFn: func(ctx context.Context, o *org.Organization) error {
				saved = o
				return nil
			},
		}
		svc := org.NewService(repo)

		resp, err := svc.Update(ctx, org.UpdateOrganizationRequest{Name: "Akme Global"})
		assert.NoError(t, err)
		assert.Equal(t, "Akme Global", resp.Name)
		assert.Equal(t, "akme", resp.Slug)
		assert.NotNil(t, saved)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := org.NewService(&fakeOrgRepo{})

		_, err := svc.Update(ctx, org.UpdateOrganizationRequest{Name: "   "})
		assert.ErrorIs(t, err, orgerrors.ErrInvalidOrganizationName)
	})

	t.Run("without tenant context rejected", func(t *testing.T) {
		svc := org.NewService(&fakeOrgRepo{})

		_, err := svc.Update(context.Background(), org.UpdateOrganizationRequest{Name: "Akme"})
		assert.Error(t, err)
	})
}
