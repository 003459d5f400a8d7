package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-peoplehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const csrfSecret = "unit-test-server-secret-0123456789ab"

func newCSRFRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CSRF(csrfSecret, false))
	r.GET("/resource", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/resource", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func mintPair(t *testing.T, r *gin.Engine) (secret, token *http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		switch c.Name {
		case middleware.CSRFSecretCookie:
			secret = c
		case middleware.CSRFTokenCookie:
			token = c
		}
	}
	assert.NotNil(t, secret)
	assert.NotNil(t, token)
	assert.True(t, secret.HttpOnly)
	assert.False(t, token.HttpOnly)
	return secret, token
}

func TestCSRF_MintsPairOnFirstContact(t *testing.T) {
	mintPair(t, newCSRFRouter())
}

func TestCSRF_AcceptsHeaderToken(t *testing.T) {
	r := newCSRFRouter()
	secret, token := mintPair(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.AddCookie(secret)
	req.Header.Set(middleware.CSRFHeader, token.Value)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCSRF_AcceptsCookieFallback(t *testing.T) {
	r := newCSRFRouter()
	secret, token := mintPair(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.AddCookie(secret)
	req.AddCookie(token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCSRF_RejectsMissingToken(t *testing.T) {
	r := newCSRFRouter()
	secret, _ := mintPair(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.AddCookie(secret)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSRF_RejectsForgedToken(t *testing.T) {
	r := newCSRFRouter()
	secret, _ := mintPair(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.AddCookie(secret)
	req.Header.Set(middleware.CSRFHeader, "0000000000000000000000000000000000000000000000000000000000000000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
