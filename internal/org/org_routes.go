package org

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	orgs := r.Group("/organization")
	{
		orgs.GET("", handler.GetCurrent)
		orgs.PUT("", rbac.Authorize(enforcer, "organization", "manage"), handler.Update)
	}
}
