package auth

import (
	"net/http"
	"strconv"

	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/apperror"
	"go-peoplehub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service  Service
	sessions *session.Manager
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Manager, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, sessions: sessions, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Register langsung login: cookie session ditulis di response yang sama.
	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result.User, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result.User, nil)
}

// Logout selalu sukses: menghapus cookie tidak butuh session valid.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

// LoginAttempts mengembalikan riwayat percobaan login satu email,
// untuk review keamanan oleh manager.
func (h *Handler) LoginAttempts(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httpErr := apperror.ToHTTP(apperror.RequiredField("email"))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	attempts := h.service.LoginHistory(c.Request.Context(), email, limit)

	response.Success(c, http.StatusOK, attempts, nil)
}
