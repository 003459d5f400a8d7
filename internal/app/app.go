package app

import (
	"go-peoplehub/internal/config"
	"go-peoplehub/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	// Config divalidasi sekali di sini; secret hilang berarti proses tidak
	// boleh naik sama sekali.
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

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	if err := registerModules(router, cfg, gormDB, rdb); err != nil {
		return err
	}

	zap.L().Info("application modules registered",
		zap.Bool("oauth_enabled", cfg.OAuthEnabled()),
		zap.Bool("cookie_secure", cfg.CookieSecure),
	)
	return nil
}
