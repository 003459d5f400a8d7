package middleware

import (
	"net/http"

	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/response"
	"go-peoplehub/internal/tenant"

	"github.com/gin-gonic/gin"
)

// SessionAuth adalah edge gatekeeper: membaca session cookie, menolak request
// tanpa session valid, lalu mengikat identitas user DAN tenant context ke
// request. Semua handler di belakangnya boleh mengandalkan context ini.
func SessionAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Read(c)
		if s == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		c.Set("user_id", s.UserID.String())
		c.Set("email", s.Email)
		c.Set("role", s.Role)
		c.Set("org_id", s.OrganizationID.String())
		c.Set("org_slug", s.OrganizationSlug)

		// Tenant context dibentuk SEKALI per request dari session dan hidup
		// hanya di context request ini.
		ctx := tenant.WithContext(c.Request.Context(), tenant.Context{
			OrganizationID: s.OrganizationID,
			Slug:           s.OrganizationSlug,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
