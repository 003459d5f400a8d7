package notification

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", rbac.Authorize(enforcer, "notification", "read"), handler.List)
		notifications.POST("/:id/read", rbac.Authorize(enforcer, "notification", "update"), handler.MarkRead)
		notifications.POST("/read-all", rbac.Authorize(enforcer, "notification", "update"), handler.MarkAllRead)
	}
}
