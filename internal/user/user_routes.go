package user

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	members := r.Group("/members")
	{
		members.GET("", rbac.Authorize(enforcer, "profile", "read"), handler.ListMembers)
		members.GET("/:id", rbac.Authorize(enforcer, "profile", "read"), handler.GetProfile)
		members.DELETE("/:id", rbac.Authorize(enforcer, "member", "manage"), handler.Deactivate)
	}

	me := r.Group("/me")
	{
		me.GET("", handler.GetMe)
		me.PUT("", rbac.Authorize(enforcer, "profile", "update"), handler.UpdateMe)
	}
}
