package oauth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang seluruh rute OAuth pada group publik:
// browser flow, introspeksi pending, dan penyelesaian onboarding.
func RegisterRoutes(public *gin.RouterGroup, handler *Handler) {
	oauth := public.Group("/auth/oauth")
	{
		oauth.GET("/google/start", handler.Start)
		oauth.GET("/google/callback", handler.Callback)

		oauth.GET("/pending", handler.GetPending)
		oauth.DELETE("/pending", handler.DeletePending)

		oauth.POST("/register", handler.Register)
		oauth.POST("/join", handler.Join)
	}
}
