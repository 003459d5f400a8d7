package absence

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	absences := r.Group("/absences")
	{
		absences.POST("", rbac.Authorize(enforcer, "absence", "create"), handler.Create)
		absences.GET("", rbac.Authorize(enforcer, "absence", "read"), handler.List)
		absences.GET("/:id", rbac.Authorize(enforcer, "absence", "read"), handler.GetByID)
		absences.POST("/:id/approve", rbac.Authorize(enforcer, "absence", "review"), handler.Approve)
		absences.POST("/:id/reject", rbac.Authorize(enforcer, "absence", "review"), handler.Reject)
		absences.POST("/:id/cancel", rbac.Authorize(enforcer, "absence", "cancel"), handler.Cancel)
	}
}
