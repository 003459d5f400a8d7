package user

import (
	"context"
	"errors"
	"strings"

	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository

	// Operasi tenant-scoped (lewat tenant store)
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	CountMembers(ctx context.Context) (int64, error)

	// Lookup global pre-auth: dipanggil SEBELUM tenant diketahui (login,
	// OAuth callback). Email unik lintas organisasi, jadi aman tanpa scope.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db    *gorm.DB
	store *tenant.Store[User, *User]
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, store: tenant.NewStore[User, *User](db)}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{db: db, store: tenant.NewStore[User, *User](db)}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	return r.store.Create(ctx, u)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.store.FindByID(ctx, id)
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	return r.store.FindMany(ctx,
		tenant.Where("is_active = ?", true),
		tenant.Order("name ASC"),
	)
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.store.Update(ctx, u)
}

func (r *repository) CountMembers(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Where("provider_id = ?", providerID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IsDuplicateEmail mendeteksi pelanggaran unique index email. Pengecekan
// ExistsByEmail sebelum insert tetap bisa kalah balapan dengan request
// paralel; yang kalah dipetakan ke conflict, bukan 500.
func IsDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email")
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "email")
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}
