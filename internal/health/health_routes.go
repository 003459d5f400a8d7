package health

import "github.com/gin-gonic/gin"

// RegisterRoutes dipasang di root engine, di luar prefix API dan tanpa
// middleware auth: probe infrastruktur tidak membawa session.
func RegisterRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/healthz", handler.Healthz)
	r.GET("/readyz", handler.Readyz)
}
