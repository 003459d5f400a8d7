package org

import (
	"context"
	"errors"
	"strings"

	orgerrors "go-peoplehub/internal/org/errors"
	"go-peoplehub/internal/tenant"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=org_service.go -destination=mock/org_service_mock.go -package=mock
type Service interface {
	GetCurrent(ctx context.Context) (*OrganizationResponse, error)
	GetBySlug(ctx context.Context, slug string) (*OrganizationResponse, error)
	Update(ctx context.Context, req UpdateOrganizationRequest) (*OrganizationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("org.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("org.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetCurrent(ctx context.Context) (*OrganizationResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, tc.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orgerrors.ErrOrganizationNotFound
		}
		return nil, err
	}
	return mapToResponse(o), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*OrganizationResponse, error) {
	o, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orgerrors.ErrOrganizationNotFound
		}
		return nil, err
	}
	return mapToResponse(o), nil
}

func (s *service) Update(ctx context.Context, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, orgerrors.ErrInvalidOrganizationName
	}

	o, err := s.repo.GetByID(ctx, tc.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orgerrors.ErrOrganizationNotFound
		}
		return nil, err
	}

	// Nama boleh berubah, slug tidak: slug ada di session semua anggota.
	o.Name = req.Name
	if req.Domain != "" {
		o.Domain = strings.ToLower(req.Domain)
	}

	if err := s.repo.Update(ctx, o); err != nil {
		s.logger.Error("update organization failed",
			zap.String("organization_id", o.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("organization updated", zap.String("organization_id", o.ID.String()))
	return mapToResponse(o), nil
}

func mapToResponse(o *Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:     o.ID.String(),
		Name:   o.Name,
		Slug:   o.Slug,
		Domain: o.Domain,
	}
}
