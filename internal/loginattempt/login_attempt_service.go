package loginattempt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Default kebijakan lockout. Window dan durasi sengaja sama-sama 15 menit.
	MaxAttempts     = 5
	AttemptWindow   = 15 * time.Minute
	LockoutDuration = 15 * time.Minute

	// Ambang per alamat IP: 3x ambang per akun, pertahanan kasar terhadap
	// credential stuffing terdistribusi dari satu alamat.
	IPLockoutMultiplier = 3

	RetentionHorizon = 24 * time.Hour
)

// Status adalah state lockout turunan, tidak pernah dipersist.
type Status struct {
	IsLocked          bool       `json:"is_locked"`
	FailedAttempts    int        `json:"failed_attempts"`
	RemainingAttempts int        `json:"remaining_attempts"`
	LockoutEndsAt     *time.Time `json:"lockout_ends_at,omitempty"`
}

//go:generate mockgen -source=login_attempt_service.go -destination=mock/login_attempt_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, email string, successful bool, ip, userAgent string)
	CheckAccount(ctx context.Context, email string) Status
	CheckIP(ctx context.Context, ip string) bool
	Cleanup(ctx context.Context) int64
	History(ctx context.Context, email string, limit int) []LoginAttempt
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loginattempt.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loginattempt.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

// Record mencatat percobaan login secara best-effort. Kegagalan data store
// hanya di-log: pencatatan tidak boleh memblokir jalur autentikasi.
func (s *service) Record(ctx context.Context, email string, successful bool, ip, userAgent string) {
	attempt := &LoginAttempt{
		ID:         uuid.New(),
		Email:      normalizeEmail(email),
		Successful: successful,
		IPAddress:  ip,
		UserAgent:  userAgent,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Create(ctx, attempt); err != nil {
		s.logger.Warn("record login attempt failed",
			zap.String("email", attempt.Email),
			zap.Bool("successful", successful),
			zap.Error(err),
		)
	}
}

// CheckAccount menghitung state lockout per email dari attempt dalam window.
// Lockout berakhir murni berdasarkan waktu; tidak ada reset record eksplisit.
// Kegagalan data store FAIL OPEN: lapor tidak terkunci dengan sisa attempt
// penuh (keputusan kebijakan: availability di atas enforcement ketat).
func (s *service) CheckAccount(ctx context.Context, email string) Status {
	open := Status{IsLocked: false, RemainingAttempts: MaxAttempts}

	now := s.now().UTC()
	failed, err := s.repo.ListFailedByEmailSince(ctx, normalizeEmail(email), now.Add(-AttemptWindow))
	if err != nil {
		s.logger.Warn("check account lockout failed, failing open",
			zap.String("email", normalizeEmail(email)),
			zap.Error(err),
		)
		return open
	}

	count := len(failed)
	if count < MaxAttempts {
		return Status{
			IsLocked:          false,
			FailedAttempts:    count,
			RemainingAttempts: MaxAttempts - count,
		}
	}

	// Attempt ke-MaxAttempts (urutan naik) adalah yang memicu lockout.
	tripped := failed[MaxAttempts-1].CreatedAt
	endsAt := tripped.Add(LockoutDuration)
	if !now.Before(endsAt) {
		// lockout sudah lewat: terbuka lagi tanpa reset eksplisit
		return Status{
			IsLocked:          false,
			FailedAttempts:    count,
			RemainingAttempts: 0,
		}
	}

	return Status{
		IsLocked:          true,
		FailedAttempts:    count,
		RemainingAttempts: 0,
		LockoutEndsAt:     &endsAt,
	}
}

// CheckIP mengunci satu alamat sumber begitu jumlah kegagalannya (tanpa
// filter email) mencapai 3x ambang per akun. Fail open saat error.
func (s *service) CheckIP(ctx context.Context, ip string) bool {
	if ip == "" {
		return false
	}

	now := s.now().UTC()
	count, err := s.repo.CountFailedByIPSince(ctx, ip, now.Add(-AttemptWindow))
	if err != nil {
		s.logger.Warn("check ip lockout failed, failing open",
			zap.String("ip", ip),
			zap.Error(err),
		)
		return false
	}

	return count >= MaxAttempts*IPLockoutMultiplier
}

// Cleanup menghapus attempt yang lebih tua dari retention horizon.
// Return 0 saat gagal, tidak pernah raise.
func (s *service) Cleanup(ctx context.Context) int64 {
	deleted, err := s.repo.DeleteOlderThan(ctx, s.now().UTC().Add(-RetentionHorizon))
	if err != nil {
		s.logger.Warn("cleanup old login attempts failed", zap.Error(err))
		return 0
	}

	if deleted > 0 {
		s.logger.Info("old login attempts cleaned up", zap.Int64("deleted", deleted))
	}
	return deleted
}

// History mengembalikan attempt terbaru lebih dulu; kosong saat gagal.
func (s *service) History(ctx context.Context, email string, limit int) []LoginAttempt {
	if limit <= 0 {
		limit = 10
	}

	attempts, err := s.repo.ListRecentByEmail(ctx, normalizeEmail(email), limit)
	if err != nil {
		s.logger.Warn("get login attempt history failed",
			zap.String("email", normalizeEmail(email)),
			zap.Error(err),
		)
		return []LoginAttempt{}
	}
	return attempts
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
