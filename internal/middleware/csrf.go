package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-peoplehub/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFSecretCookie = "csrf-secret"
	CSRFTokenCookie  = "csrf-token"
	CSRFHeader       = "X-CSRF-Token"

	csrfCookieTTL = 7 * 24 * time.Hour
)

// CSRF menerapkan pola double-submit:
//   - csrf-secret: random 32 byte, httpOnly, SameSite=Strict — tidak terbaca JS.
//   - csrf-token: HMAC-SHA256(serverSecret, csrf-secret), boleh dibaca client
//     dan dikirim balik lewat header X-CSRF-Token (preferensi) atau cookie.
//
// Request mutasi tanpa token valid ditolak 403. GET/HEAD/OPTIONS bebas.
func CSRF(serverSecret string, secure bool) gin.HandlerFunc {
	key := []byte(serverSecret)

	return func(c *gin.Context) {
		secret, err := c.Cookie(CSRFSecretCookie)
		if err != nil || secret == "" {
			secret = mintCSRFPair(c, key, secure)
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		expected := deriveCSRFToken(key, secret)

		token := c.GetHeader(CSRFHeader)
		if token == "" {
			// fallback: cookie yang sama yang kami mint sendiri
			token, _ = c.Cookie(CSRFTokenCookie)
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			response.Error(c, http.StatusForbidden, "CSRF_TOKEN_INVALID", "Missing or invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func mintCSRFPair(c *gin.Context, key []byte, secure bool) string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	secret := hex.EncodeToString(buf)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CSRFSecretCookie, secret, int(csrfCookieTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(CSRFTokenCookie, deriveCSRFToken(key, secret), int(csrfCookieTTL.Seconds()), "/", "", secure, false)
	return secret
}

func deriveCSRFToken(key []byte, secret string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}
