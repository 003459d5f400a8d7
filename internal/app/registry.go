package app

import (
	"go-peoplehub/internal/absence"
	"go-peoplehub/internal/auth"
	"go-peoplehub/internal/config"
	"go-peoplehub/internal/feedback"
	"go-peoplehub/internal/health"
	"go-peoplehub/internal/invitation"
	"go-peoplehub/internal/loginattempt"
	"go-peoplehub/internal/messaging/kafka"
	"go-peoplehub/internal/middleware"
	"go-peoplehub/internal/notification"
	"go-peoplehub/internal/oauth"
	"go-peoplehub/internal/org"
	"go-peoplehub/internal/rbac"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/secretbox"
	"go-peoplehub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	codec, err := secretbox.New(cfg.EncryptionKey)
	if err != nil {
		return err
	}
	sessions := session.NewManager(codec, cfg.CookieSecure)
	pendings := oauth.NewPendingStore(codec, cfg.CookieSecure)

	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	orgRepo := org.NewRepository(gormDB)
	feedbackRepo := feedback.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	invitationRepo := invitation.NewRepository(gormDB)
	attemptRepo := loginattempt.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	attemptService := loginattempt.NewService(attemptRepo)
	authService := auth.NewService(gormDB, userRepo, orgRepo, attemptService)
	oauthService := oauth.NewService(gormDB, userRepo, orgRepo)
	orgService := org.NewService(orgRepo)
	userService := user.NewService(userRepo)
	feedbackService := feedback.NewService(gormDB, feedbackRepo, userRepo, outboxRepo)
	absenceService := absence.NewService(gormDB, absenceRepo, outboxRepo)
	notificationService := notification.NewService(notificationRepo)
	invitationService := invitation.NewService(
		gormDB, invitationRepo, userRepo, orgRepo, outboxRepo, []byte(cfg.SessionSecret),
	)

	// --- Handlers ---
	var provider oauth.Provider
	if cfg.OAuthEnabled() {
		provider = oauth.NewGoogleProvider(
			cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL,
		)
	}

	authHandler := auth.NewHandler(authService, sessions)
	oauthHandler := oauth.NewHandler(
		provider, oauthService, sessions, pendings, cfg.FrontendURL, cfg.CookieSecure,
	)
	orgHandler := org.NewHandler(orgService)
	userHandler := user.NewHandler(userService)
	feedbackHandler := feedback.NewHandler(feedbackService)
	absenceHandler := absence.NewHandler(absenceService)
	notificationHandler := notification.NewHandler(notificationService)
	invitationHandler := invitation.NewHandler(invitationService, sessions)
	healthHandler := health.NewHandler(gormDB, rdb)

	// --- Routes ---
	health.RegisterRoutes(router, healthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.CSRF(cfg.SessionSecret, cfg.CookieSecure))

	// Endpoint tanpa session: register/login/oauth/accept. Rate limit per IP
	// hanya di sini; jalur authenticated sudah punya identitas untuk diaudit.
	public := api.Group("")
	public.Use(middleware.RateLimitByIP(rate.Limit(5), 10))

	protected := api.Group("")
	protected.Use(middleware.SessionAuth(sessions))
	protected.Use(middleware.ContextLogger(zap.L()))
	if rdb != nil {
		protected.Use(middleware.Idempotency(rdb))
	}

	auth.RegisterRoutes(public, protected, authHandler, enforcer)
	oauth.RegisterRoutes(public, oauthHandler)
	invitation.RegisterRoutes(public, protected, invitationHandler, enforcer)
	org.RegisterRoutes(protected, orgHandler, enforcer)
	user.RegisterRoutes(protected, userHandler, enforcer)
	feedback.RegisterRoutes(protected, feedbackHandler, enforcer)
	absence.RegisterRoutes(protected, absenceHandler, enforcer)
	notification.RegisterRoutes(protected, notificationHandler, enforcer)

	return nil
}
