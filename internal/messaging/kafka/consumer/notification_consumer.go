package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-peoplehub/internal/absence"
	"go-peoplehub/internal/events"
	"go-peoplehub/internal/notification"
	"go-peoplehub/internal/tenant"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Setiap event membawa organization_id-nya sendiri; consumer merakit tenant
// context dari situ karena tidak ada session di jalur async.
func tenantCtxFor(ctx context.Context, organizationID string) (context.Context, error) {
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, err
	}
	return tenant.WithContext(ctx, tenant.Context{OrganizationID: orgID}), nil
}

func ConsumeFeedbackCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.feedback_created")
	log.Info("feedback created consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("feedback created consumer stopped")
				return
			}
			log.Error("fetch feedback created message failed", zap.Error(err))
			continue
		}

		var event events.FeedbackCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode feedback_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		tctx, err := tenantCtxFor(ctx, event.OrganizationID)
		if err != nil {
			log.Error("feedback_created event carries invalid organization id",
				zap.String("organization_id", event.OrganizationID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		receiverID, err := uuid.Parse(event.ReceiverID)
		if err != nil {
			log.Error("feedback_created event carries invalid receiver id",
				zap.String("receiver_id", event.ReceiverID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notifications.Notify(tctx, receiverID,
			notification.KindFeedbackReceived,
			"Anda menerima feedback baru dari rekan kerja",
		)
		if err != nil {
			log.Error("create feedback notification failed",
				zap.String("feedback_id", event.FeedbackID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit feedback created message failed", zap.Error(err))
			continue
		}

		log.Info("feedback notification delivered",
			zap.String("feedback_id", event.FeedbackID),
			zap.String("receiver_id", event.ReceiverID),
		)
	}
}

func ConsumeAbsenceStatusChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.absence_status")
	log.Info("absence status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("absence status consumer stopped")
				return
			}
			log.Error("fetch absence status message failed", zap.Error(err))
			continue
		}

		var event events.AbsenceStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode absence_status_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Pembatalan dilakukan pemohon sendiri, tidak perlu dinotifikasi.
		if event.NewStatus == absence.StatusCancelled {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		tctx, err := tenantCtxFor(ctx, event.OrganizationID)
		if err != nil {
			log.Error("absence_status_changed event carries invalid organization id",
				zap.String("organization_id", event.OrganizationID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		userID, err := uuid.Parse(event.UserID)
		if err != nil {
			log.Error("absence_status_changed event carries invalid user id",
				zap.String("user_id", event.UserID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := "Pengajuan absen Anda telah disetujui"
		if event.NewStatus == absence.StatusRejected {
			message = "Pengajuan absen Anda ditolak"
		}

		err = notifications.Notify(tctx, userID, notification.KindAbsenceReviewed, message)
		if err != nil {
			log.Error("create absence notification failed",
				zap.String("absence_id", event.AbsenceID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit absence status message failed", zap.Error(err))
			continue
		}

		log.Info("absence notification delivered",
			zap.String("absence_id", event.AbsenceID),
			zap.String("user_id", event.UserID),
			zap.String("new_status", event.NewStatus),
		)
	}
}

func ConsumeInvitationCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.invitation_created")
	log.Info("invitation created consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("invitation created consumer stopped")
				return
			}
			log.Error("fetch invitation created message failed", zap.Error(err))
			continue
		}

		var event events.InvitationCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode invitation_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		tctx, err := tenantCtxFor(ctx, event.OrganizationID)
		if err != nil {
			log.Error("invitation_created event carries invalid organization id",
				zap.String("organization_id", event.OrganizationID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Penerima undangan belum punya akun; yang dinotifikasi adalah
		// manager pengundangnya sebagai konfirmasi.
		inviterID, err := uuid.Parse(event.InvitedBy)
		if err != nil {
			log.Error("invitation_created event carries invalid inviter id",
				zap.String("invited_by", event.InvitedBy),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = notifications.Notify(tctx, inviterID,
			notification.KindInvitationSent,
			fmt.Sprintf("Undangan untuk %s sudah terkirim", event.Email),
		)
		if err != nil {
			log.Error("create invitation notification failed",
				zap.String("invitation_id", event.InvitationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit invitation created message failed", zap.Error(err))
			continue
		}

		log.Info("invitation notification delivered",
			zap.String("invitation_id", event.InvitationID),
			zap.String("email", event.Email),
		)
	}
}
