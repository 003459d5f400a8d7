package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-peoplehub/internal/middleware"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/secretbox"
	"go-peoplehub/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const encryptionKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	codec, err := secretbox.New(encryptionKey)
	assert.NoError(t, err)
	return session.NewManager(codec, false)
}

func sessionCookie(t *testing.T, m *session.Manager, s session.Session) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, m.Create(c, s))

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not written")
	return nil
}

func TestSessionAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := newSessionManager(t)

	userID := uuid.New()
	orgID := uuid.New()

	var gotRole string
	var gotTenant tenant.Context
	r := gin.New()
	r.Use(middleware.SessionAuth(manager))
	r.GET("/me", func(c *gin.Context) {
		gotRole = c.GetString("role")
		tc, err := tenant.FromContext(c.Request.Context())
		assert.NoError(t, err)
		gotTenant = tc
		c.Status(http.StatusOK)
	})

	t.Run("no cookie rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid session binds identity and tenant", func(t *testing.T) {
		cookie := sessionCookie(t, manager, session.Session{
			UserID:           userID,
			Email:            "orang@contoh.com",
			Role:             "MANAGER",
			OrganizationID:   orgID,
			OrganizationSlug: "akme",
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(cookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MANAGER", gotRole)
		assert.Equal(t, orgID, gotTenant.OrganizationID)
		assert.Equal(t, "akme", gotTenant.Slug)
	})

	t.Run("tampered cookie rejected", func(t *testing.T) {
		cookie := sessionCookie(t, manager, session.Session{
			UserID:           userID,
			Email:            "orang@contoh.com",
			Role:             "EMPLOYEE",
			OrganizationID:   orgID,
			OrganizationSlug: "akme",
		})
		cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(cookie)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired session rejected", func(t *testing.T) {
		codec, err := secretbox.New(encryptionKey)
		assert.NoError(t, err)

		token, err := codec.Seal(session.Session{
			UserID:           userID,
			Email:            "orang@contoh.com",
			Role:             "EMPLOYEE",
			OrganizationID:   orgID,
			OrganizationSlug: "akme",
			ExpiresAt:        time.Now().Add(-time.Minute).Unix(),
		})
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
