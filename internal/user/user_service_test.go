package user_test

import (
	"context"
	"testing"

	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/user"
	usererrors "go-peoplehub/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn       func(ctx context.Context, u *user.User) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*user.User, error)
	findAllFn      func(ctx context.Context) ([]user.User, error)
	updateFn       func(ctx context.Context, u *user.User) error
	countMembersFn func(ctx context.Context) (int64, error)
	getByEmailFn   func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepository) WithDB(db *gorm.DB) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) CountMembers(ctx context.Context) (int64, error) {
	if f.countMembersFn != nil {
		return f.countMembersFn(ctx)
	}
	return 0, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByProvider(ctx context.Context, provider, providerID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestUserService_ListMembers(t *testing.T) {
	ctx := context.Background()
	self := uuid.New()
	other := uuid.New()

	repo := &fakeUserRepository{
		findAllFn: func(ctx context.Context) ([]user.User, error) {
			return []user.User{
				{ID: self, Name: "Self", Role: permission.RoleEmployee},
				{ID: other, Name: "Other", Role: permission.RoleEmployee},
			}, nil
		},
	}
	svc := user.NewService(repo)

	t.Run("employee only sees own entry", func(t *testing.T) {
		actor := permission.Actor{ID: self, Role: permission.RoleEmployee}
		resp, err := svc.ListMembers(ctx, actor)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, self.String(), resp[0].ID)
	})

	t.Run("coworker sees the directory", func(t *testing.T) {
		actor := permission.Actor{ID: self, Role: permission.RoleCoworker}
		resp, err := svc.ListMembers(ctx, actor)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	subject := uuid.New()
	stranger := uuid.New()

	repo := &fakeUserRepository{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			if id == subject {
				return &user.User{ID: subject, Name: "Subject", Role: permission.RoleEmployee, IsActive: true}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := user.NewService(repo)

	t.Run("employee cannot read a stranger profile", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleEmployee}
		_, err := svc.GetProfile(ctx, actor, subject.String())
		assert.ErrorIs(t, err, usererrors.ErrProfileNotVisible)
	})

	t.Run("manager can read any profile", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleManager}
		resp, err := svc.GetProfile(ctx, actor, subject.String())
		assert.NoError(t, err)
		assert.Equal(t, "Subject", resp.Name)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleManager}
		_, err := svc.GetProfile(ctx, actor, uuid.New().String())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleManager}
		_, err := svc.GetProfile(ctx, actor, "not-a-uuid")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()
	manager := uuid.New()
	target := uuid.New()

	t.Run("cannot deactivate self", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})
		actor := permission.Actor{ID: manager, Role: permission.RoleManager}
		err := svc.Deactivate(ctx, actor, manager.String())
		assert.ErrorIs(t, err, usererrors.ErrCannotDeactivateSelf)
	})

	t.Run("deactivates target", func(t *testing.T) {
		var saved *user.User
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
				return &user.User{ID: target, IsActive: true}, nil
			},
			updateFn: func(ctx context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}
		svc := user.NewService(repo)

		actor := permission.Actor{ID: manager, Role: permission.RoleManager}
		assert.NoError(t, svc.Deactivate(ctx, actor, target.String()))
		assert.NotNil(t, saved)
		assert.False(t, saved.IsActive)
	})
}
