package auth

import (
	"go-peoplehub/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang rute publik (register/login) pada group tanpa
// session guard dan rute keamanan pada group yang sudah terautentikasi.
func RegisterRoutes(public, protected *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	public.POST("/auth/register", handler.Register)
	public.POST("/auth/login", handler.Login)
	public.POST("/auth/logout", handler.Logout)

	protected.GET("/security/login-attempts",
		rbac.Authorize(enforcer, "security", "read"),
		handler.LoginAttempts,
	)
}
