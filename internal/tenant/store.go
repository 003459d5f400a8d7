package tenant

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owned adalah constraint untuk entity yang wajib terisolasi per organisasi
// (user, feedback, absence request, notification, invitation).
type Owned[T any] interface {
	*T
	GetOrganizationID() uuid.UUID
	SetOrganizationID(id uuid.UUID)
}

// QueryOption menambahkan kondisi ke query TANPA bisa melonggarkan filter
// tenant: filter organization_id selalu di-AND oleh store, jadi kondisi
// organization_id buatan caller tidak pernah memperluas hasil.
type QueryOption func(db *gorm.DB) *gorm.DB

func Where(query any, args ...any) QueryOption {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

func Order(value any) QueryOption {
	return func(db *gorm.DB) *gorm.DB { return db.Order(value) }
}

func Limit(n int) QueryOption {
	return func(db *gorm.DB) *gorm.DB { return db.Limit(n) }
}

func Offset(n int) QueryOption {
	return func(db *gorm.DB) *gorm.DB { return db.Offset(n) }
}

// Store membungkus semua operasi data untuk satu jenis entity tenant-scoped.
//
// Kontrak isolasi:
//   - Operasi ber-filter (FindMany, FindFirst, Count, UpdateMany, DeleteMany,
//     Delete): kalau ada tenant aktif di context, filter organization_id
//     disuntikkan; kalau tidak ada, query lewat tanpa filter (caller di luar
//     request scope bertanggung jawab atas scoping-nya sendiri).
//   - Point lookup (FindByID): tidak bisa difilter sebelum eksekusi, jadi
//     divalidasi SETELAH fetch; organisasi tidak cocok dikembalikan sebagai
//     record not found, bukan forbidden, supaya keberadaan row lain tenant
//     tidak pernah bocor.
//   - Write (Create, CreateMany): WAJIB ada tenant aktif dan organization_id
//     selalu di-set paksa dari tenant, nilai dari caller diabaikan.
type Store[T any, PT Owned[T]] struct {
	db *gorm.DB
}

func NewStore[T any, PT Owned[T]](db *gorm.DB) *Store[T, PT] {
	return &Store[T, PT]{db: db}
}

// WithDB mengembalikan store baru di atas handle lain (biasanya gorm tx).
func (s *Store[T, PT]) WithDB(db *gorm.DB) *Store[T, PT] {
	return &Store[T, PT]{db: db}
}

func (s *Store[T, PT]) scoped(ctx context.Context, opts ...QueryOption) *gorm.DB {
	// Scope tenant diterapkan langsung (bukan lewat gorm Scopes yang lazy)
	// supaya filter organization_id selalu berada di depan kondisi caller.
	db := ScopeFromContext(ctx)(s.db.WithContext(ctx).Model(new(T)))
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

func (s *Store[T, PT]) FindMany(ctx context.Context, opts ...QueryOption) ([]T, error) {
	var out []T
	err := s.scoped(ctx, opts...).Find(&out).Error
	return out, err
}

func (s *Store[T, PT]) FindFirst(ctx context.Context, opts ...QueryOption) (*T, error) {
	var out T
	if err := s.scoped(ctx, opts...).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID mengeksekusi lookup by primary key tanpa filter, lalu
// mencocokkan organization_id hasilnya dengan tenant aktif.
func (s *Store[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	if err := s.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if tc := FromContextOrNil(ctx); tc != nil {
		if PT(&out).GetOrganizationID() != tc.OrganizationID {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return &out, nil
}

func (s *Store[T, PT]) Count(ctx context.Context, opts ...QueryOption) (int64, error) {
	var count int64
	err := s.scoped(ctx, opts...).Count(&count).Error
	return count, err
}

// Aggregate menjalankan ekspresi agregasi (mis. "COALESCE(SUM(total_days),0)")
// dalam scope tenant dan men-scan hasilnya ke dst.
func (s *Store[T, PT]) Aggregate(ctx context.Context, selectExpr string, dst any, opts ...QueryOption) error {
	return s.scoped(ctx, opts...).Select(selectExpr).Scan(dst).Error
}

func (s *Store[T, PT]) Create(ctx context.Context, entity PT) error {
	tc, err := FromContext(ctx)
	if err != nil {
		return err
	}

	entity.SetOrganizationID(tc.OrganizationID)
	return s.db.WithContext(ctx).Create(entity).Error
}

func (s *Store[T, PT]) CreateMany(ctx context.Context, entities []PT) error {
	tc, err := FromContext(ctx)
	if err != nil {
		return err
	}

	for _, e := range entities {
		e.SetOrganizationID(tc.OrganizationID)
	}
	return s.db.WithContext(ctx).Create(entities).Error
}

// Update menyimpan entity yang sebelumnya diambil lewat store ini.
// Entity dengan organisasi berbeda dari tenant aktif diperlakukan not found.
func (s *Store[T, PT]) Update(ctx context.Context, entity PT) error {
	tc, err := FromContext(ctx)
	if err != nil {
		return err
	}
	if entity.GetOrganizationID() != tc.OrganizationID {
		return gorm.ErrRecordNotFound
	}

	return s.db.WithContext(ctx).Save(entity).Error
}

func (s *Store[T, PT]) UpdateMany(ctx context.Context, values map[string]any, opts ...QueryOption) (int64, error) {
	// organization_id tidak boleh dipindah lewat bulk update
	delete(values, "organization_id")

	res := s.scoped(ctx, opts...).Updates(values)
	return res.RowsAffected, res.Error
}

func (s *Store[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scoped(ctx).Where("id = ?", id).Delete(new(T)).Error
}

func (s *Store[T, PT]) DeleteMany(ctx context.Context, opts ...QueryOption) (int64, error) {
	res := s.scoped(ctx, opts...).Delete(new(T))
	return res.RowsAffected, res.Error
}
