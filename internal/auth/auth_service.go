package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "go-peoplehub/internal/auth/errors"
	"go-peoplehub/internal/loginattempt"
	"go-peoplehub/internal/org"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/tenant"
	"go-peoplehub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResult membawa payload session yang siap disegel ke cookie
// plus representasi user untuk response body.
type AuthResult struct {
	Session session.Session
	User    AuthResponse
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest, ip, userAgent string) (*AuthResult, error)
	LoginHistory(ctx context.Context, email string, limit int) []loginattempt.LoginAttempt
}

type service struct {
	db       *gorm.DB
	users    user.Repository
	orgs     org.Repository
	attempts loginattempt.Service
	logger   *zap.Logger
}

func NewService(db *gorm.DB, users user.Repository, orgs org.Repository, attempts loginattempt.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, users: users, orgs: orgs, attempts: attempts, logger: l}
}

// Register membuat organisasi baru sekaligus user pertamanya (MANAGER)
// dalam satu transaksi. Organisasi tanpa manager tidak boleh pernah ada.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Email unik lintas organisasi
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, autherrors.ErrEmailAlreadyRegistered
	}

	// 2. Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. Cari slug yang belum terpakai
	orgSlug, err := org.UniqueSlug(ctx, s.orgs, req.OrganizationName)
	if err != nil {
		return nil, err
	}

	// 4. Org + manager dalam satu transaksi
	newOrg := &org.Organization{
		ID:   uuid.New(),
		Name: strings.TrimSpace(req.OrganizationName),
		Slug: orgSlug,
	}
	hash := string(hashed)
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         permission.RoleManager,
		PasswordHash: &hash,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orgs.WithDB(tx).Create(ctx, newOrg); err != nil {
			return err
		}

		// Tenant context dibangun manual: session belum ada di titik ini.
		tctx := tenant.WithContext(ctx, tenant.Context{
			OrganizationID: newOrg.ID,
			Slug:           newOrg.Slug,
			Name:           newOrg.Name,
		})
		return s.users.WithDB(tx).Create(tctx, newUser)
	})
	if err != nil {
		if user.IsDuplicateEmail(err) {
			return nil, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register organization failed",
			zap.String("slug", orgSlug),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("organization registered",
		zap.String("organization_id", newOrg.ID.String()),
		zap.String("slug", newOrg.Slug),
	)
	return buildResult(newUser, newOrg), nil
}

// Login memverifikasi kredensial dengan urutan: rate limit IP, lockout
// akun, baru bcrypt. Semua attempt dicatat best-effort.
func (s *service) Login(ctx context.Context, req LoginRequest, ip, userAgent string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 1. Blokir sumber yang jelas sedang stuffing
	if s.attempts.CheckIP(ctx, ip) {
		return nil, autherrors.ErrTooManyAttempts
	}

	// 2. Lockout per akun
	if status := s.attempts.CheckAccount(ctx, email); status.IsLocked {
		return nil, autherrors.ErrAccountLocked
	}

	// 3. Ambil user; email tak dikenal tetap dicatat sebagai kegagalan
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.attempts.Record(ctx, email, false, ip, userAgent)
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 4. Akun OAuth-only tidak punya password untuk dibandingkan
	if u.PasswordHash == nil {
		s.attempts.Record(ctx, email, false, ip, userAgent)
		return nil, autherrors.ErrPasswordLoginUnavailable
	}

	// 5. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		s.attempts.Record(ctx, email, false, ip, userAgent)
		return nil, autherrors.ErrInvalidCredentials
	}

	// 6. Password benar tapi akun nonaktif: bukan kegagalan kredensial
	if !u.IsActive {
		return nil, autherrors.ErrAccountDisabled
	}

	s.attempts.Record(ctx, email, true, ip, userAgent)

	// 7. Org untuk slug di session
	o, err := s.orgs.GetByID(ctx, u.OrganizationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("organization_id", o.ID.String()),
	)
	return buildResult(u, o), nil
}

// LoginHistory meneruskan riwayat attempt; kosong saat store bermasalah.
func (s *service) LoginHistory(ctx context.Context, email string, limit int) []loginattempt.LoginAttempt {
	return s.attempts.History(ctx, email, limit)
}

func buildResult(u *user.User, o *org.Organization) *AuthResult {
	return &AuthResult{
		Session: session.Session{
			UserID:           u.ID,
			Email:            u.Email,
			Role:             u.Role,
			OrganizationID:   o.ID,
			OrganizationSlug: o.Slug,
		},
		User: AuthResponse{
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
