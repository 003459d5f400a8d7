package invitation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-peoplehub/internal/auth"
	"go-peoplehub/internal/events"
	invitationerrors "go-peoplehub/internal/invitation/errors"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/org"
	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/contextutil"
	"go-peoplehub/internal/tenant"
	"go-peoplehub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=invitation_service.go -destination=mock/invitation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor permission.Actor, req CreateInvitationRequest) (*InvitationResponse, error)
	List(ctx context.Context, actor permission.Actor) ([]InvitationResponse, error)
	Revoke(ctx context.Context, actor permission.Actor, id string) (*InvitationResponse, error)

	// Accept dipanggil tanpa session: identitas pemanggil datang dari token
	// undangan itu sendiri.
	Accept(ctx context.Context, req AcceptInvitationRequest) (*auth.AuthResult, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	orgs   org.Repository
	outbox kafka.OutboxRepository
	secret []byte
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, orgs org.Repository, outbox kafka.OutboxRepository, secret []byte, logger ...*zap.Logger) Service {
	l := zap.L().Named("invitation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invitation.service")
	}
	return &service{db: db, repo: repo, users: users, orgs: orgs, outbox: outbox, secret: secret, logger: l}
}

// Create menerbitkan undangan baru plus outbox event-nya dalam satu
// transaksi. Email yang sudah jadi anggota atau sudah punya undangan PENDING
// ditolak 409 supaya tidak ada dua jalan masuk untuk email yang sama.
func (s *service) Create(ctx context.Context, actor permission.Actor, req CreateInvitationRequest) (*InvitationResponse, error) {
	if !permission.CanManageMembers(actor) {
		return nil, invitationerrors.ErrCannotManageInvitations
	}

	email := strings.ToLower(req.Email)

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invitationerrors.ErrAlreadyMember
	}

	pending, err := s.repo.HasPendingForEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, invitationerrors.ErrPendingInviteExists
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	inv := &Invitation{
		ID:             uuid.New(),
		OrganizationID: tc.OrganizationID,
		Email:          email,
		Role:           req.Role,
		Status:         StatusPending,
		InvitedBy:      actor.ID,
		ExpiresAt:      time.Now().UTC().Add(TTL),
	}

	token, err := SignToken(s.secret, inv)
	if err != nil {
		return nil, err
	}
	inv.Token = token

	rid := contextutil.GetRequestID(ctx)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithDB(tx).Create(ctx, inv); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}

		event := events.InvitationCreatedEvent{
			EventType:      "invitation_created",
			RequestID:      rid,
			InvitationID:   inv.ID.String(),
			OrganizationID: inv.OrganizationID.String(),
			Email:          inv.Email,
			Role:           inv.Role,
			InvitedBy:      inv.InvitedBy.String(),
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithDB(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "invitation",
			AggregateID:   inv.ID.String(),
			EventType:     event.EventType,
			Topic:         events.InvitationCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("create invitation failed",
			zap.String("request_id", rid),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("invitation created",
		zap.String("request_id", rid),
		zap.String("invitation_id", inv.ID.String()),
		zap.String("role", inv.Role),
	)
	return mapToResponse(inv, true), nil
}

func (s *service) List(ctx context.Context, actor permission.Actor) ([]InvitationResponse, error) {
	if !permission.CanManageMembers(actor) {
		return nil, invitationerrors.ErrCannotManageInvitations
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]InvitationResponse, 0, len(items))
	for i := range items {
		// Token tidak diikutkan di listing; hanya response create yang
		// membawanya.
		resp = append(resp, *mapToResponse(&items[i], false))
	}
	return resp, nil
}

func (s *service) Revoke(ctx context.Context, actor permission.Actor, id string) (*InvitationResponse, error) {
	if !permission.CanManageMembers(actor) {
		return nil, invitationerrors.ErrCannotManageInvitations
	}

	iid, err := uuid.Parse(id)
	if err != nil {
		return nil, invitationerrors.ErrInvalidInvitationID
	}

	inv, err := s.repo.FindByID(ctx, iid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitationerrors.ErrInvitationNotFound
		}
		return nil, err
	}

	if inv.Status != StatusPending {
		return nil, invitationerrors.ErrInvitationNotPending
	}

	inv.Status = StatusRevoked
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("invitation revoked",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	return mapToResponse(inv, false), nil
}

// Accept memverifikasi token, lalu mencocokkan ulang claims dengan row
// undangan: signature valid saja belum cukup kalau undangannya sudah
// di-revoke atau dipakai.
func (s *service) Accept(ctx context.Context, req AcceptInvitationRequest) (*auth.AuthResult, error) {
	claims, err := ParseToken(s.secret, req.Token)
	if err != nil {
		return nil, err
	}

	iid, err := uuid.Parse(claims.InvitationID)
	if err != nil {
		return nil, invitationerrors.ErrInvalidToken
	}

	inv, err := s.repo.GetByIDGlobal(ctx, iid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitationerrors.ErrInvalidToken
		}
		return nil, err
	}

	if !claimsMatch(claims, inv) {
		return nil, invitationerrors.ErrInvalidToken
	}
	if inv.Status != StatusPending {
		return nil, invitationerrors.ErrInvitationNotPending
	}
	if inv.IsExpired(time.Now().UTC()) {
		return nil, invitationerrors.ErrTokenExpired
	}

	taken, err := s.users.ExistsByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invitationerrors.ErrAlreadyMember
	}

	o, err := s.orgs.GetByID(ctx, inv.OrganizationID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	passwordHash := string(hash)

	now := time.Now().UTC()
	u := &user.User{
		ID:             uuid.New(),
		OrganizationID: o.ID,
		Email:          inv.Email,
		Name:           req.Name,
		Role:           inv.Role,
		PasswordHash:   &passwordHash,
		// Email sudah diverifikasi manager lewat undangan
		EmailVerifiedAt: &now,
		IsActive:        true,
	}

	// Belum ada session, jadi tenant context dirakit manual dari organisasi
	// pengundang.
	tctx := tenant.WithContext(ctx, tenant.Context{
		OrganizationID: o.ID,
		Slug:           o.Slug,
		Name:           o.Name,
	})

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithDB(tx).Create(tctx, u); err != nil {
			return err
		}

		inv.Status = StatusAccepted
		inv.AcceptedAt = &now
		return s.repo.WithDB(tx).Update(tctx, inv)
	})
	if err != nil {
		if user.IsDuplicateEmail(err) {
			return nil, invitationerrors.ErrAlreadyMember
		}
		s.logger.Error("accept invitation failed",
			zap.String("invitation_id", inv.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("invitation accepted",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("user_id", u.ID.String()),
		zap.String("organization_id", o.ID.String()),
	)

	return &auth.AuthResult{
		Session: session.Session{
			UserID:           u.ID,
			Email:            u.Email,
			Role:             u.Role,
			OrganizationID:   o.ID,
			OrganizationSlug: o.Slug,
		},
		User: auth.AuthResponse{
			ID:               u.ID.String(),
			Email:            u.Email,
			Name:             u.Name,
			Role:             u.Role,
			OrganizationID:   o.ID.String(),
			OrganizationSlug: o.Slug,
			OrganizationName: o.Name,
		},
	}, nil
}

func claimsMatch(claims *TokenClaims, inv *Invitation) bool {
	return claims.OrganizationID == inv.OrganizationID.String() &&
		strings.EqualFold(claims.Email, inv.Email)
}

func mapToResponse(inv *Invitation, withToken bool) *InvitationResponse {
	resp := &InvitationResponse{
		ID:         inv.ID.String(),
		Email:      inv.Email,
		Role:       inv.Role,
		Status:     inv.Status,
		InvitedBy:  inv.InvitedBy.String(),
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
		AcceptedAt: inv.AcceptedAt,
	}
	if withToken {
		resp.Token = inv.Token
	}
	return resp
}
