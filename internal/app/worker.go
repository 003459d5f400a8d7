package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-peoplehub/internal/config"
	"go-peoplehub/internal/loginattempt"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/messaging/kafka/producer"
	"go-peoplehub/internal/shared/connection"

	"go.uber.org/zap"
)

const attemptCleanupInterval = time.Hour

// RunWorker menjalankan outbox relay plus housekeeping periodik (purge login
// attempt lama) sampai menerima sinyal berhenti.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	attemptService := loginattempt.NewService(loginattempt.NewRepository(gormDB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go func() {
		ticker := time.NewTicker(attemptCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purged := attemptService.Cleanup(ctx)
				logger.Info("login attempts purged", zap.Int64("count", purged))
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
