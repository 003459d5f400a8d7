package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-peoplehub/internal/events"
	feedbackerrors "go-peoplehub/internal/feedback/errors"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/shared/contextutil"
	"go-peoplehub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=feedback_service.go -destination=mock/feedback_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor permission.Actor, req CreateFeedbackRequest) (*FeedbackResponse, error)
	List(ctx context.Context, actor permission.Actor) ([]FeedbackResponse, error)
	GetByID(ctx context.Context, actor permission.Actor, id string) (*FeedbackResponse, error)
	Delete(ctx context.Context, actor permission.Actor, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("feedback.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outbox, logger: l}
}

// Create menyimpan feedback dan event-nya dalam satu transaksi (outbox
// pattern): notifikasi penerima tidak boleh hilang kalau proses mati
// setelah commit.
func (s *service) Create(ctx context.Context, actor permission.Actor, req CreateFeedbackRequest) (*FeedbackResponse, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, feedbackerrors.ErrReceiverNotFound
	}

	// 1. Tidak boleh ke diri sendiri
	if !permission.CanGiveFeedback(actor, receiverID) {
		return nil, feedbackerrors.ErrSelfFeedback
	}

	// 2. Penerima harus anggota organisasi yang sama (lookup tenant-scoped)
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feedbackerrors.ErrReceiverNotFound
		}
		return nil, err
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	f := &Feedback{
		ID:         uuid.New(),
		GiverID:    actor.ID,
		ReceiverID: receiver.ID,
		Content:    req.Content,
		Visibility: visibility,
	}

	rid := contextutil.GetRequestID(ctx)

	// 3. Feedback + outbox event atomic
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithDB(tx).Create(ctx, f); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}

		event := events.FeedbackCreatedEvent{
			EventType:      "feedback_created",
			RequestID:      rid,
			FeedbackID:     f.ID.String(),
			OrganizationID: f.OrganizationID.String(),
			GiverID:        f.GiverID.String(),
			ReceiverID:     f.ReceiverID.String(),
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithDB(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "feedback",
			AggregateID:   f.ID.String(),
			EventType:     event.EventType,
			Topic:         events.FeedbackCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("create feedback failed",
			zap.String("request_id", rid),
			zap.String("giver_id", actor.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("feedback created",
		zap.String("request_id", rid),
		zap.String("feedback_id", f.ID.String()),
	)
	return mapToResponse(f), nil
}

// List mengembalikan feedback yang boleh dilihat actor: miliknya sebagai
// pemberi/penerima, feedback PUBLIC, atau semuanya untuk MANAGER.
func (s *service) List(ctx context.Context, actor permission.Actor) ([]FeedbackResponse, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]FeedbackResponse, 0, len(all))
	for i := range all {
		f := &all[i]
		if !visibleTo(actor, f) {
			continue
		}
		resp = append(resp, *mapToResponse(f))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor permission.Actor, id string) (*FeedbackResponse, error) {
	fid, err := uuid.Parse(id)
	if err != nil {
		return nil, feedbackerrors.ErrInvalidFeedbackID
	}

	f, err := s.repo.FindByID(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feedbackerrors.ErrFeedbackNotFound
		}
		return nil, err
	}

	if !visibleTo(actor, f) {
		return nil, feedbackerrors.ErrFeedbackNotVisible
	}
	return mapToResponse(f), nil
}

func (s *service) Delete(ctx context.Context, actor permission.Actor, id string) error {
	fid, err := uuid.Parse(id)
	if err != nil {
		return feedbackerrors.ErrInvalidFeedbackID
	}

	f, err := s.repo.FindByID(ctx, fid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return feedbackerrors.ErrFeedbackNotFound
		}
		return err
	}

	if !permission.CanDeleteFeedback(actor, f.GiverID) {
		return feedbackerrors.ErrFeedbackNotVisible
	}

	if err := s.repo.Delete(ctx, fid); err != nil {
		s.logger.Error("delete feedback failed", zap.String("feedback_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("feedback deleted",
		zap.String("feedback_id", id),
		zap.String("actor_id", actor.ID.String()),
	)
	return nil
}

func visibleTo(actor permission.Actor, f *Feedback) bool {
	if f.Visibility == VisibilityPublic {
		return true
	}
	return permission.CanViewFeedback(actor, f.GiverID, f.ReceiverID)
}

func mapToResponse(f *Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:         f.ID.String(),
		GiverID:    f.GiverID.String(),
		ReceiverID: f.ReceiverID.String(),
		Content:    f.Content,
		Polished:   f.Polished,
		Visibility: f.Visibility,
		CreatedAt:  f.CreatedAt,
	}
}
