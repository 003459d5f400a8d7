package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-peoplehub/internal/config"
	"go-peoplehub/internal/events"
	"go-peoplehub/internal/messaging/kafka/consumer"
	"go-peoplehub/internal/notification"
	"go-peoplehub/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupID = "go-peoplehub-notifications"

// RunConsumer menjalankan fan-out notifikasi: satu reader per topic, semua
// menulis ke tabel notifications lewat service yang sama.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationService := notification.NewService(notification.NewRepository(gormDB))

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{cfg.KafkaBroker},
			Topic:          topic,
			GroupID:        consumerGroupID,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	feedbackReader := newReader(events.FeedbackCreatedTopic)
	defer feedbackReader.Close()
	absenceReader := newReader(events.AbsenceStatusChangedTopic)
	defer absenceReader.Close()
	invitationReader := newReader(events.InvitationCreatedTopic)
	defer invitationReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeFeedbackCreated(ctx, feedbackReader, notificationService, logger)
	go consumer.ConsumeAbsenceStatusChanged(ctx, absenceReader, notificationService, logger)
	go consumer.ConsumeInvitationCreated(ctx, invitationReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
