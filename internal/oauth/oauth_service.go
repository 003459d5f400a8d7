package oauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-peoplehub/internal/auth"
	autherrors "go-peoplehub/internal/auth/errors"
	oautherrors "go-peoplehub/internal/oauth/errors"
	"go-peoplehub/internal/org"
	orgerrors "go-peoplehub/internal/org/errors"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/tenant"
	"go-peoplehub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownIdentity menandakan profil valid dari provider tapi belum punya
// akun: bukan kondisi error ke client, melainkan sinyal untuk masuk ke
// state Pending.
var ErrUnknownIdentity = errors.New("oauth: identity has no local account")

//go:generate mockgen -source=oauth_service.go -destination=mock/oauth_service_mock.go -package=mock
type Service interface {
	SignIn(ctx context.Context, profile *Profile) (*auth.AuthResult, error)
	CompleteRegister(ctx context.Context, pending *PendingData, req CompleteRegisterRequest) (*auth.AuthResult, error)
	CompleteJoin(ctx context.Context, pending *PendingData, req CompleteJoinRequest) (*auth.AuthResult, error)
}

type service struct {
	db     *gorm.DB
	users  user.Repository
	orgs   org.Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, users user.Repository, orgs org.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("oauth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("oauth.service")
	}
	return &service{db: db, users: users, orgs: orgs, logger: l}
}

// SignIn mencocokkan profil provider ke akun lokal. Urutan: identitas
// provider dulu, baru email (hanya jika provider memverifikasi email itu;
// tanpa verifikasi, mencocokkan email = celah account takeover).
func (s *service) SignIn(ctx context.Context, profile *Profile) (*auth.AuthResult, error) {
	// 1. Akun yang sudah pernah login dengan provider ini
	u, err := s.users.GetByProvider(ctx, profile.Provider, profile.ProviderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Belum ada link: coba cocokkan email terverifikasi, lalu link
	if u == nil {
		if !profile.EmailVerified {
			return nil, ErrUnknownIdentity
		}
		u, err = s.users.GetByEmail(ctx, profile.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownIdentity
			}
			return nil, err
		}
		if err := s.linkProvider(ctx, u, profile); err != nil {
			return nil, err
		}
	}

	if !u.IsActive {
		return nil, autherrors.ErrAccountDisabled
	}

	o, err := s.orgs.GetByID(ctx, u.OrganizationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("oauth sign-in",
		zap.String("provider", profile.Provider),
		zap.String("user_id", u.ID.String()),
	)
	return resultFor(u, o), nil
}

// CompleteRegister membuat organisasi + user pertama dari pending handshake.
// Body harus sama persis dengan identitas di cookie; mismatch = tidak ada
// yang dibuat.
func (s *service) CompleteRegister(ctx context.Context, pending *PendingData, req CompleteRegisterRequest) (*auth.AuthResult, error) {
	if !identityMatches(pending, req.Email, req.Provider, req.ProviderID) {
		return nil, oautherrors.ErrIdentityMismatch
	}

	exists, err := s.users.ExistsByEmail(ctx, pending.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, oautherrors.ErrAlreadyMember
	}

	orgSlug, err := org.UniqueSlug(ctx, s.orgs, req.OrganizationName)
	if err != nil {
		return nil, err
	}

	newOrg := &org.Organization{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.OrganizationName),
		Slug: orgSlug,
	}
	newUser := userFromPending(pending, permission.RoleManager)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orgs.WithDB(tx).Create(ctx, newOrg); err != nil {
			return err
		}

		tctx := tenant.WithContext(ctx, tenant.Context{
			OrganizationID: newOrg.ID,
			Slug:           newOrg.Slug,
			Name:           newOrg.Name,
		})
		return s.users.WithDB(tx).Create(tctx, newUser)
	})
	if err != nil {
		s.logger.Error("oauth register failed", zap.String("slug", orgSlug), zap.Error(err))
		return nil, err
	}

	s.logger.Info("organization registered via oauth",
		zap.String("organization_id", newOrg.ID.String()),
		zap.String("provider", pending.Provider),
	)
	return resultFor(newUser, newOrg), nil
}

// CompleteJoin menambahkan user baru (EMPLOYEE) ke organisasi yang sudah ada.
func (s *service) CompleteJoin(ctx context.Context, pending *PendingData, req CompleteJoinRequest) (*auth.AuthResult, error) {
	if !identityMatches(pending, req.Email, req.Provider, req.ProviderID) {
		return nil, oautherrors.ErrIdentityMismatch
	}

	o, err := s.orgs.GetBySlug(ctx, req.OrganizationSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orgerrors.ErrOrganizationNotFound
		}
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, pending.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, oautherrors.ErrAlreadyMember
	}

	newUser := userFromPending(pending, permission.RoleEmployee)
	tctx := tenant.WithContext(ctx, tenant.Context{
		OrganizationID: o.ID,
		Slug:           o.Slug,
		Name:           o.Name,
	})
	if err := s.users.Create(tctx, newUser); err != nil {
		s.logger.Error("oauth join failed",
			zap.String("organization_id", o.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("member joined via oauth",
		zap.String("organization_id", o.ID.String()),
		zap.String("user_id", newUser.ID.String()),
	)
	return resultFor(newUser, o), nil
}

func (s *service) linkProvider(ctx context.Context, u *user.User, profile *Profile) error {
	provider := profile.Provider
	providerID := profile.ProviderID
	u.Provider = &provider
	u.ProviderID = &providerID
	u.ProviderAccessToken = optional(profile.AccessToken)
	u.ProviderRefreshToken = optional(profile.RefreshToken)
	if u.EmailVerifiedAt == nil {
		now := time.Now().UTC()
		u.EmailVerifiedAt = &now
	}
	if u.AvatarURL == "" {
		u.AvatarURL = profile.AvatarURL
	}

	// Update global tanpa tenant scope: link terjadi pre-session.
	return s.db.WithContext(ctx).Save(u).Error
}

func identityMatches(pending *PendingData, email, provider, providerID string) bool {
	return strings.EqualFold(pending.Email, strings.TrimSpace(email)) &&
		pending.Provider == provider &&
		pending.ProviderID == providerID
}

// userFromPending membawa token provider dari cookie tersegel ke akun yang
// di-link; token tidak pernah datang dari request body.
func userFromPending(pending *PendingData, role string) *user.User {
	provider := pending.Provider
	providerID := pending.ProviderID

	u := &user.User{
		ID:                   uuid.New(),
		Email:                strings.ToLower(pending.Email),
		Name:                 pending.Name,
		Role:                 role,
		AvatarURL:            pending.AvatarURL,
		Provider:             &provider,
		ProviderID:           &providerID,
		ProviderAccessToken:  optional(pending.AccessToken),
		ProviderRefreshToken: optional(pending.RefreshToken),
		IsActive:             true,
	}
	if pending.EmailVerified {
		now := time.Now().UTC()
		u.EmailVerifiedAt = &now
	}
	return u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func resultFor(u *user.User, o *org.Organization) *auth.AuthResult {
	return &auth.AuthResult{
		Session: session.Session{
			UserID:           u.ID,
			Email:            u.Email,
			Role:             u.Role,
			OrganizationID:   o.ID,
			OrganizationSlug: o.Slug,
		},
		User: auth.AuthResponse{
			ID:               u.ID.String(),
			Email:            u.Email,
			Name:             u.Name,
			Role:             u.Role,
			OrganizationID:   o.ID.String(),
			OrganizationSlug: o.Slug,
			OrganizationName: o.Name,
		},
	}
}
