package oauth_test

import (
	"context"
	"testing"

	"go-peoplehub/internal/oauth"
	oautherrors "go-peoplehub/internal/oauth/errors"
	"go-peoplehub/internal/org"
	orgerrors "go-peoplehub/internal/org/errors"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/tenant"
	"go-peoplehub/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	createFn        func(ctx context.Context, u *user.User) error
	getByEmailFn    func(ctx context.Context, email string) (*user.User, error)
	getByProviderFn func(ctx context.Context, provider, providerID string) (*user.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
}

func (f *fakeUserRepo) WithDB(db *gorm.DB) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error   { return nil }
func (f *fakeUserRepo) CountMembers(ctx context.Context) (int64, error)  { return 0, nil }

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*user.User, error) {
	if f.getByProviderFn != nil {
		return f.getByProviderFn(ctx, provider, providerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.existsByEmailFn != nil {
		return f.existsByEmailFn(ctx, email)
	}
	return false, nil
}

type fakeOrgRepo struct {
	createFn     func(ctx context.Context, o *org.Organization) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*org.Organization, error)
	getBySlugFn  func(ctx context.Context, slug string) (*org.Organization, error)
	existsSlugFn func(ctx context.Context, slug string) (bool, error)
}

func (f *fakeOrgRepo) WithDB(db *gorm.DB) org.Repository { return f }

func (f *fakeOrgRepo) Create(ctx context.Context, o *org.Organization) error {
	if f.createFn != nil {
		return f.createFn(ctx, o)
	}
	return nil
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*org.Organization, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgRepo) GetBySlug(ctx context.Context, slug string) (*org.Organization, error) {
	if f.getBySlugFn != nil {
		return f.getBySlugFn(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrgRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if f.existsSlugFn != nil {
		return f.existsSlugFn(ctx, slug)
	}
	return false, nil
}

func (f *fakeOrgRepo) Update(ctx context.Context, o *org.Organization) error { return nil }

func googleProfile() *oauth.Profile {
	return &oauth.Profile{
		Provider:      "google",
		ProviderID:    "g-123",
		Email:         "jane@acme.test",
		Name:          "Jane",
		EmailVerified: true,
	}
}

func pendingFor(p *oauth.Profile) *oauth.PendingData {
	return &oauth.PendingData{
		Provider:      p.Provider,
		ProviderID:    p.ProviderID,
		Email:         p.Email,
		Name:          p.Name,
		EmailVerified: p.EmailVerified,
		AccessToken:   "ya29.akses",
		RefreshToken:  "1//refresh",
	}
}

func TestOAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	acme := &org.Organization{ID: orgID, Name: "Acme", Slug: "acme"}

	t.Run("linked account signs in", func(t *testing.T) {
		u := &user.User{ID: uuid.New(), OrganizationID: orgID, Email: "jane@acme.test", Role: "EMPLOYEE", IsActive: true}
		svc := oauth.NewService(nil,
			&fakeUserRepo{getByProviderFn: func(ctx context.Context, provider, providerID string) (*user.User, error) {
				assert.Equal(t, "google", provider)
				assert.Equal(t, "g-123", providerID)
				return u, nil
			}},
			&fakeOrgRepo{getByIDFn: func(ctx context.Context, id uuid.UUID) (*org.Organization, error) {
				return acme, nil
			}},
		)

		result, err := svc.SignIn(ctx, googleProfile())
		assert.NoError(t, err)
		assert.Equal(t, u.ID, result.Session.UserID)
		assert.Equal(t, "acme", result.Session.OrganizationSlug)
	})

	t.Run("unknown identity goes pending", func(t *testing.T) {
		svc := oauth.NewService(nil, &fakeUserRepo{}, &fakeOrgRepo{})

		_, err := svc.SignIn(ctx, googleProfile())
		assert.ErrorIs(t, err, oauth.ErrUnknownIdentity)
	})

	t.Run("unverified email never matched by address", func(t *testing.T) {
		called := false
		profile := googleProfile()
		profile.EmailVerified = false

		svc := oauth.NewService(nil,
			&fakeUserRepo{getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				called = true
				return &user.User{ID: uuid.New()}, nil
			}},
			&fakeOrgRepo{},
		)

		_, err := svc.SignIn(ctx, profile)
		assert.ErrorIs(t, err, oauth.ErrUnknownIdentity)
		assert.False(t, called)
	})
}

func TestOAuthService_CompleteRegister_Mismatch(t *testing.T) {
	ctx := context.Background()
	created := false
	svc := oauth.NewService(nil,
		&fakeUserRepo{createFn: func(ctx context.Context, u *user.User) error {
			created = true
			return nil
		}},
		&fakeOrgRepo{createFn: func(ctx context.Context, o *org.Organization) error {
			created = true
			return nil
		}},
	)

	pending := pendingFor(googleProfile())

	cases := []oauth.CompleteRegisterRequest{
		{Email: "other@acme.test", Provider: "google", ProviderID: "g-123", OrganizationName: "Acme"},
		{Email: "jane@acme.test", Provider: "github", ProviderID: "g-123", OrganizationName: "Acme"},
		{Email: "jane@acme.test", Provider: "google", ProviderID: "g-999", OrganizationName: "Acme"},
	}
	for _, req := range cases {
		_, err := svc.CompleteRegister(ctx, pending, req)
		assert.ErrorIs(t, err, oautherrors.ErrIdentityMismatch)
	}
	assert.False(t, created, "mismatch tidak boleh membuat apapun")
}

func TestOAuthService_CompleteRegister_EmailTaken(t *testing.T) {
	svc := oauth.NewService(nil,
		&fakeUserRepo{existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		}},
		&fakeOrgRepo{},
	)

	_, err := svc.CompleteRegister(context.Background(), pendingFor(googleProfile()), oauth.CompleteRegisterRequest{
		Email: "jane@acme.test", Provider: "google", ProviderID: "g-123", OrganizationName: "Acme",
	})
	assert.ErrorIs(t, err, oautherrors.ErrAlreadyMember)
}

func TestOAuthService_CompleteJoin(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	acme := &org.Organization{ID: orgID, Name: "Acme", Slug: "acme"}
	pending := pendingFor(googleProfile())

	t.Run("unknown org slug", func(t *testing.T) {
		svc := oauth.NewService(nil, &fakeUserRepo{}, &fakeOrgRepo{})

		_, err := svc.CompleteJoin(ctx, pending, oauth.CompleteJoinRequest{
			Email: "jane@acme.test", Provider: "google", ProviderID: "g-123", OrganizationSlug: "ghost",
		})
		assert.ErrorIs(t, err, orgerrors.ErrOrganizationNotFound)
	})

	t.Run("creates employee inside target tenant", func(t *testing.T) {
		var createdUser *user.User
		var createdInOrg uuid.UUID

		svc := oauth.NewService(nil,
			&fakeUserRepo{createFn: func(cctx context.Context, u *user.User) error {
				createdUser = u
				tc, err := tenant.FromContext(cctx)
				assert.NoError(t, err)
				createdInOrg = tc.OrganizationID
				return nil
			}},
			&fakeOrgRepo{getBySlugFn: func(ctx context.Context, slug string) (*org.Organization, error) {
				assert.Equal(t, "acme", slug)
				return acme, nil
			}},
		)

		result, err := svc.CompleteJoin(ctx, pending, oauth.CompleteJoinRequest{
			Email: "jane@acme.test", Provider: "google", ProviderID: "g-123", OrganizationSlug: "acme",
		})
		assert.NoError(t, err)
		assert.Equal(t, orgID, createdInOrg)
		assert.Equal(t, permission.RoleEmployee, createdUser.Role)
		assert.Nil(t, createdUser.PasswordHash)
		assert.NotNil(t, createdUser.EmailVerifiedAt)
		assert.Equal(t, "acme", result.Session.OrganizationSlug)

		// token dari cookie tersegel ikut dipersist ke akun yang di-link
		if assert.NotNil(t, createdUser.ProviderAccessToken) {
			assert.Equal(t, "ya29.akses", *createdUser.ProviderAccessToken)
		}
		if assert.NotNil(t, createdUser.ProviderRefreshToken) {
			assert.Equal(t, "1//refresh", *createdUser.ProviderRefreshToken)
		}
	})

	t.Run("email already member", func(t *testing.T) {
		svc := oauth.NewService(nil,
			&fakeUserRepo{existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			}},
			&fakeOrgRepo{getBySlugFn: func(ctx context.Context, slug string) (*org.Organization, error) {
				return acme, nil
			}},
		)

		_, err := svc.CompleteJoin(ctx, pending, oauth.CompleteJoinRequest{
			Email: "jane@acme.test", Provider: "google", ProviderID: "g-123", OrganizationSlug: "acme",
		})
		assert.ErrorIs(t, err, oautherrors.ErrAlreadyMember)
	})
}
