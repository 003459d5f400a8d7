package user

import (
	"context"
	"errors"

	"go-peoplehub/internal/permission"
	usererrors "go-peoplehub/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	ListMembers(ctx context.Context, actor permission.Actor) ([]MemberResponse, error)
	GetProfile(ctx context.Context, actor permission.Actor, id string) (*ProfileResponse, error)
	UpdateOwnProfile(ctx context.Context, actorID string, req UpdateProfileRequest) (*ProfileResponse, error)
	Deactivate(ctx context.Context, actor permission.Actor, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListMembers(ctx context.Context, actor permission.Actor) ([]MemberResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// Lapisan kedua setelah tenant scope: EMPLOYEE hanya melihat dirinya.
	resp := make([]MemberResponse, 0, len(users))
	for _, u := range users {
		if !permission.CanViewProfile(actor, u.ID) {
			continue
		}
		resp = append(resp, MemberResponse{
			ID:        u.ID.String(),
			Name:      u.Name,
			Role:      u.Role,
			AvatarURL: u.AvatarURL,
		})
	}
	return resp, nil
}

func (s *service) GetProfile(ctx context.Context, actor permission.Actor, id string) (*ProfileResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	if !permission.CanViewProfile(actor, u.ID) {
		return nil, usererrors.ErrProfileNotVisible
	}
	return mapToProfile(u), nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, actorID string, req UpdateProfileRequest) (*ProfileResponse, error) {
	uid, err := uuid.Parse(actorID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	u.Name = req.Name
	if req.AvatarURL != "" {
		u.AvatarURL = req.AvatarURL
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update profile failed", zap.String("user_id", actorID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", actorID))
	return mapToProfile(u), nil
}

func (s *service) Deactivate(ctx context.Context, actor permission.Actor, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	if actor.ID == uid {
		return usererrors.ErrCannotDeactivateSelf
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("deactivate user failed", zap.String("user_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("user deactivated",
		zap.String("user_id", id),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

func mapToProfile(u *User) *ProfileResponse {
	return &ProfileResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerifiedAt != nil,
		IsActive:      u.IsActive,
	}
}
