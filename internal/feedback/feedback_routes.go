package feedback

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	feedbacks := r.Group("/feedbacks")
	{
		feedbacks.POST("", rbac.Authorize(enforcer, "feedback", "create"), handler.Create)
		feedbacks.GET("", rbac.Authorize(enforcer, "feedback", "read"), handler.List)
		feedbacks.GET("/:id", rbac.Authorize(enforcer, "feedback", "read"), handler.GetByID)
		feedbacks.DELETE("/:id", rbac.Authorize(enforcer, "feedback", "delete"), handler.Delete)
	}
}
