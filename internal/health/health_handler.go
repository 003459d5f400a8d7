package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// checkTimeout membatasi readiness probe supaya dependency yang hang tidak
// ikut menggantung health check-nya.
const checkTimeout = 2 * time.Second

type Handler struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *zap.Logger
}

func NewHandler(db *gorm.DB, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{db: db, rdb: rdb, logger: l}
}

// Healthz hanya menjawab "proses hidup"; tidak menyentuh dependency.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz mengecek Postgres dan Redis. Satu dependency gagal sudah cukup
// untuk 503, tapi semua tetap dicek supaya detailnya lengkap.
func (h *Handler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	checks := gin.H{
		"postgres": h.checkPostgres(ctx),
		"redis":    h.checkRedis(ctx),
	}

	status := http.StatusOK
	overall := "ok"
	for name, result := range checks {
		if result != "ok" {
			status = http.StatusServiceUnavailable
			overall = "unavailable"
			h.logger.Warn("readiness check failed",
				zap.String("dependency", name),
				zap.Any("detail", result),
			)
		}
	}

	c.JSON(status, gin.H{"status": overall, "checks": checks})
}

func (h *Handler) checkPostgres(ctx context.Context) string {
	if h.db == nil {
		return "not configured"
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h *Handler) checkRedis(ctx context.Context) string {
	if h.rdb == nil {
		return "not configured"
	}

	if err := h.rdb.Ping(ctx).Err(); err != nil {
		return err.Error()
	}
	return "ok"
}
