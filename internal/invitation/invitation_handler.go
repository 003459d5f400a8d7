package invitation

import (
	"net/http"

	"go-peoplehub/internal/permission"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/apperror"
	"go-peoplehub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service  Service
	sessions *session.Manager
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Manager, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("invitation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invitation.handler")
	}
	return &Handler{service: service, sessions: sessions, logger: l}
}

func actorFromContext(c *gin.Context) permission.Actor {
	id, _ := uuid.Parse(c.GetString("user_id"))
	return permission.Actor{ID: id, Role: c.GetString("role")}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("invitation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) Revoke(c *gin.Context) {
	resp, err := h.service.Revoke(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Accept adalah endpoint publik: token undangan menggantikan session sebagai
// bukti identitas, dan session baru langsung dibuat setelah berhasil.
func (h *Handler) Accept(c *gin.Context) {
	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	result, err := h.service.Accept(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result.User, nil)
}
