package invitation

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(public, protected *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	public.POST("/invitations/accept", handler.Accept)

	invitations := protected.Group("/invitations")
	{
		invitations.POST("", rbac.Authorize(enforcer, "invitation", "manage"), handler.Create)
		invitations.GET("", rbac.Authorize(enforcer, "invitation", "manage"), handler.List)
		invitations.POST("/:id/revoke", rbac.Authorize(enforcer, "invitation", "manage"), handler.Revoke)
	}
}
