package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-peoplehub/internal/notification/errors"
	"go-peoplehub/internal/permission"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Notify dipanggil consumer Kafka; ctx-nya harus sudah membawa tenant
	// context organisasi tujuan.
	Notify(ctx context.Context, userID uuid.UUID, kind, message string) error

	List(ctx context.Context, actor permission.Actor, page, limit int) ([]NotificationResponse, *NotificationListMeta, error)
	MarkRead(ctx context.Context, actor permission.Actor, id string) (*NotificationResponse, error)
	MarkAllRead(ctx context.Context, actor permission.Actor) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, kind, message string) error {
	n := &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Kind:    kind,
		Message: message,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("user_id", userID.String()),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("kind", kind),
	)
	return nil
}

func (s *service) List(ctx context.Context, actor permission.Actor, page, limit int) ([]NotificationResponse, *NotificationListMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := (page - 1) * limit

	items, err := s.repo.FindByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.repo.CountByUser(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}

	unread, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}

	resp := make([]NotificationResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *mapToResponse(&items[i]))
	}
	return resp, &NotificationListMeta{
		UnreadCount: unread,
		Total:       total,
		Page:        page,
		PageSize:    limit,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, actor permission.Actor, id string) (*NotificationResponse, error) {
	nid, err := uuid.Parse(id)
	if err != nil {
		return nil, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, nid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationerrors.ErrNotificationNotFound
		}
		return nil, err
	}

	// Notifikasi orang lain tidak terlihat, jadi not found (bukan forbidden).
	if n.UserID != actor.ID {
		return nil, notificationerrors.ErrNotificationNotFound
	}

	if n.ReadAt == nil {
		now := time.Now().UTC()
		n.ReadAt = &now
		if err := s.repo.Update(ctx, n); err != nil {
			return nil, err
		}
	}
	return mapToResponse(n), nil
}

func (s *service) MarkAllRead(ctx context.Context, actor permission.Actor) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, actor.ID, time.Now().UTC())
	if err != nil {
		s.logger.Error("mark all notifications read failed",
			zap.String("user_id", actor.ID.String()),
			zap.Error(err),
		)
		return 0, err
	}
	return updated, nil
}

func mapToResponse(n *Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		Message:   n.Message,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
