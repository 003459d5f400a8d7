package absence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	absenceerrors "go-peoplehub/internal/absence/errors"
	"go-peoplehub/internal/events"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=absence_service.go -destination=mock/absence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor permission.Actor, req CreateAbsenceRequest) (*AbsenceResponse, error)
	List(ctx context.Context, actor permission.Actor) ([]AbsenceResponse, error)
	GetByID(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error)
	Approve(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error)
	Reject(ctx context.Context, actor permission.Actor, id string, req RejectAbsenceRequest) (*AbsenceResponse, error)
	Cancel(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, actor permission.Actor, req CreateAbsenceRequest) (*AbsenceResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate.After(endDate) {
		return nil, absenceerrors.ErrInvalidDateRange
	}

	// Satu user tidak boleh punya dua request hidup di periode beririsan.
	overlap, err := s.repo.HasOverlappingPeriod(ctx, actor.ID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("absence overlap check failed", zap.Error(err))
		return nil, err
	}
	if overlap {
		s.logger.Warn("absence overlap detected",
			zap.String("user_id", actor.ID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return nil, absenceerrors.ErrAbsenceOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	a := &AbsenceRequest{
		ID:        uuid.New(),
		UserID:    actor.ID,
		Type:      req.Type,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create absence persist failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("absence request created",
		zap.String("absence_id", a.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int("total_days", totalDays),
	)
	return mapToResponse(a), nil
}

// List: EMPLOYEE/COWORKER melihat request miliknya, MANAGER melihat semua.
func (s *service) List(ctx context.Context, actor permission.Actor) ([]AbsenceResponse, error) {
	var (
		requests []AbsenceRequest
		err      error
	)
	if actor.IsElevated() {
		requests, err = s.repo.FindAll(ctx)
	} else {
		requests, err = s.repo.FindByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]AbsenceResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, *mapToResponse(&requests[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsElevated() && a.UserID != actor.ID {
		return nil, absenceerrors.ErrAbsenceNotFound
	}
	return mapToResponse(a), nil
}

func (s *service) Approve(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error) {
	return s.review(ctx, actor, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor permission.Actor, id string, req RejectAbsenceRequest) (*AbsenceResponse, error) {
	if req.RejectionReason == "" {
		return nil, absenceerrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, actor, id, StatusRejected, &req.RejectionReason)
}

// Cancel hanya oleh pemilik dan hanya selama masih PENDING.
func (s *service) Cancel(ctx context.Context, actor permission.Actor, id string) (*AbsenceResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.UserID != actor.ID {
		return nil, absenceerrors.ErrNotOwner
	}
	if !isAllowedStatusTransition(a.Status, StatusCancelled) {
		return nil, absenceerrors.ErrInvalidStatusTransition
	}

	return s.transition(ctx, actor, a, StatusCancelled, nil, nil)
}

// review menjalankan APPROVED/REJECTED oleh manager lain.
func (s *service) review(ctx context.Context, actor permission.Actor, id, target string, rejectionReason *string) (*AbsenceResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Manager tidak boleh me-review pengajuannya sendiri.
	if !permission.CanReviewAbsence(actor, a.UserID) {
		return nil, absenceerrors.ErrNotReviewable
	}
	if !isAllowedStatusTransition(a.Status, target) {
		return nil, absenceerrors.ErrInvalidStatusTransition
	}

	reviewer := actor.ID
	return s.transition(ctx, actor, a, target, &reviewer, rejectionReason)
}

// transition menulis perubahan status + outbox event dalam satu transaksi.
func (s *service) transition(ctx context.Context, actor permission.Actor, a *AbsenceRequest, target string, reviewedBy *uuid.UUID, rejectionReason *string) (*AbsenceResponse, error) {
	oldStatus := a.Status
	a.Status = target
	a.RejectionReason = rejectionReason
	if reviewedBy != nil {
		now := time.Now().UTC()
		a.ReviewedBy = reviewedBy
		a.ReviewedAt = &now
	}

	rid := contextutil.GetRequestID(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithDB(tx).Update(ctx, a); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}

		event := events.AbsenceStatusChangedEvent{
			EventType:      "absence_status_changed",
			RequestID:      rid,
			AbsenceID:      a.ID.String(),
			OrganizationID: a.OrganizationID.String(),
			UserID:         a.UserID.String(),
			OldStatus:      oldStatus,
			NewStatus:      target,
			OccurredAt:     time.Now().UTC(),
		}
		if reviewedBy != nil {
			event.ReviewerID = reviewedBy.String()
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithDB(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "absence",
			AggregateID:   a.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AbsenceStatusChangedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("absence status transition failed",
			zap.String("absence_id", a.ID.String()),
			zap.String("target_status", target),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("absence status changed",
		zap.String("absence_id", a.ID.String()),
		zap.String("old_status", oldStatus),
		zap.String("new_status", target),
		zap.String("actor_id", actor.ID.String()),
	)
	return mapToResponse(a), nil
}

func (s *service) find(ctx context.Context, id string) (*AbsenceRequest, error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, absenceerrors.ErrInvalidAbsenceID
	}

	a, err := s.repo.FindByID(ctx, aid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, absenceerrors.ErrAbsenceNotFound
		}
		return nil, err
	}
	return a, nil
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, absenceerrors.ErrInvalidDateFormat
	}
	return d, nil
}

func mapToResponse(a *AbsenceRequest) *AbsenceResponse {
	resp := &AbsenceResponse{
		ID:              a.ID.String(),
		UserID:          a.UserID.String(),
		Type:            a.Type,
		StartDate:       a.StartDate.Format("2006-01-02"),
		EndDate:         a.EndDate.Format("2006-01-02"),
		TotalDays:       a.TotalDays,
		Reason:          a.Reason,
		Status:          a.Status,
		ReviewedAt:      a.ReviewedAt,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
	if a.ReviewedBy != nil {
		rb := a.ReviewedBy.String()
		resp.ReviewedBy = &rb
	}
	return resp
}
