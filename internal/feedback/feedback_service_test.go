package feedback_test

import (
	"context"
	"database/sql"
	"testing"

	"go-peoplehub/internal/feedback"
	feedbackerrors "go-peoplehub/internal/feedback/errors"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeFeedbackRepo struct {
	createFn   func(ctx context.Context, f *feedback.Feedback) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error)
	findAllFn  func(ctx context.Context) ([]feedback.Feedback, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeFeedbackRepo) WithDB(db *gorm.DB) feedback.Repository { return f }

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *feedback.Feedback) error {
	if f.createFn != nil {
		return f.createFn(ctx, fb)
	}
	return nil
}

func (f *fakeFeedbackRepo) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFeedbackRepo) FindAll(ctx context.Context) ([]feedback.Feedback, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeFeedbackRepo) FindByReceiver(ctx context.Context, receiverID uuid.UUID) ([]feedback.Feedback, error) {
	return nil, nil
}

func (f *fakeFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (f *fakeUserRepo) WithDB(db *gorm.DB) user.Repository             { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error   { return nil }
func (f *fakeUserRepo) CountMembers(ctx context.Context) (int64, error)  { return 0, nil }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithDB(db *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func newTxDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return gormDB, mock, db
}

func TestFeedbackService_Create(t *testing.T) {
	ctx := context.Background()
	giver := permission.Actor{ID: uuid.New(), Role: permission.RoleEmployee}
	receiverID := uuid.New()

	receiverRepo := &fakeUserRepo{findByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
		if id == receiverID {
			return &user.User{ID: receiverID, IsActive: true}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}

	t.Run("persists feedback and outbox event atomically", func(t *testing.T) {
		gormDB, mock, db := newTxDB(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeFeedbackRepo{}
		outbox := &fakeOutbox{}
		svc := feedback.NewService(gormDB, repo, receiverRepo, outbox)

		resp, err := svc.Create(ctx, giver, feedback.CreateFeedbackRequest{
			ReceiverID: receiverID.String(),
			Content:    "kerja bagus minggu ini",
		})
		assert.NoError(t, err)
		assert.Equal(t, feedback.VisibilityPrivate, resp.Visibility)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, "feedback_created", outbox.created[0].EventType)
		assert.Equal(t, resp.ID, outbox.created[0].AggregateID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("self feedback rejected", func(t *testing.T) {
		svc := feedback.NewService(nil, &fakeFeedbackRepo{}, receiverRepo, nil)

		_, err := svc.Create(ctx, giver, feedback.CreateFeedbackRequest{
			ReceiverID: giver.ID.String(),
			Content:    "saya hebat",
		})
		assert.ErrorIs(t, err, feedbackerrors.ErrSelfFeedback)
	})

	t.Run("receiver outside tenant looks like not found", func(t *testing.T) {
		svc := feedback.NewService(nil, &fakeFeedbackRepo{}, receiverRepo, nil)

		_, err := svc.Create(ctx, giver, feedback.CreateFeedbackRequest{
			ReceiverID: uuid.New().String(),
			Content:    "halo",
		})
		assert.ErrorIs(t, err, feedbackerrors.ErrReceiverNotFound)
	})
}

func TestFeedbackService_Visibility(t *testing.T) {
	ctx := context.Background()
	giverID := uuid.New()
	receiverID := uuid.New()
	strangerID := uuid.New()

	private := feedback.Feedback{
		ID: uuid.New(), GiverID: giverID, ReceiverID: receiverID,
		Content: "rahasia", Visibility: feedback.VisibilityPrivate,
	}
	public := feedback.Feedback{
		ID: uuid.New(), GiverID: giverID, ReceiverID: receiverID,
		Content: "terbuka", Visibility: feedback.VisibilityPublic,
	}

	repo := &fakeFeedbackRepo{
		findAllFn: func(ctx context.Context) ([]feedback.Feedback, error) {
			return []feedback.Feedback{private, public}, nil
		},
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
			if id == private.ID {
				f := private
				return &f, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := feedback.NewService(nil, repo, &fakeUserRepo{}, nil)

	t.Run("stranger only sees public feedback", func(t *testing.T) {
		actor := permission.Actor{ID: strangerID, Role: permission.RoleCoworker}
		resp, err := svc.List(ctx, actor)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, public.ID.String(), resp[0].ID)
	})

	t.Run("receiver sees both", func(t *testing.T) {
		actor := permission.Actor{ID: receiverID, Role: permission.RoleEmployee}
		resp, err := svc.List(ctx, actor)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("manager sees both", func(t *testing.T) {
		actor := permission.Actor{ID: strangerID, Role: permission.RoleManager}
		resp, err := svc.List(ctx, actor)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("point lookup hides private feedback from stranger", func(t *testing.T) {
		actor := permission.Actor{ID: strangerID, Role: permission.RoleCoworker}
		_, err := svc.GetByID(ctx, actor, private.ID.String())
		assert.ErrorIs(t, err, feedbackerrors.ErrFeedbackNotVisible)
	})
}

func TestFeedbackService_Delete(t *testing.T) {
	ctx := context.Background()
	giverID := uuid.New()
	f := &feedback.Feedback{ID: uuid.New(), GiverID: giverID, ReceiverID: uuid.New()}

	deleted := false
	repo := &fakeFeedbackRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
			return f, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := feedback.NewService(nil, repo, &fakeUserRepo{}, nil)

	t.Run("receiver cannot delete", func(t *testing.T) {
		actor := permission.Actor{ID: f.ReceiverID, Role: permission.RoleEmployee}
		err := svc.Delete(ctx, actor, f.ID.String())
		assert.ErrorIs(t, err, feedbackerrors.ErrFeedbackNotVisible)
		assert.False(t, deleted)
	})

	t.Run("giver can delete", func(t *testing.T) {
		actor := permission.Actor{ID: giverID, Role: permission.RoleEmployee}
		assert.NoError(t, svc.Delete(ctx, actor, f.ID.String()))
		assert.True(t, deleted)
	})
}
