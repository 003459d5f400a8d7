package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-peoplehub/internal/oauth"
	oautherrors "go-peoplehub/internal/oauth/errors"
	"go-peoplehub/internal/shared/secretbox"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newPendingStore(t *testing.T) *oauth.PendingStore {
	t.Helper()
	codec, err := secretbox.New(testKey)
	assert.NoError(t, err)
	return oauth.NewPendingStore(codec, false)
}

func contextWithCookies(w *httptest.ResponseRecorder, cookies []*http.Cookie) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c
}

func TestPendingStore_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newPendingStore(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	err := store.Set(c, oauth.PendingData{
		Provider:      "google",
		ProviderID:    "g-123",
		Email:         "jane@acme.test",
		Name:          "Jane",
		EmailVerified: true,
		Org:           "acme",
		AccessToken:   "ya29.akses",
		RefreshToken:  "1//refresh",
		IDToken:       "eyJ.id",
	})
	assert.NoError(t, err)

	w2 := httptest.NewRecorder()
	c2 := contextWithCookies(w2, w.Result().Cookies())

	got, err := store.Read(c2)
	assert.NoError(t, err)
	assert.Equal(t, "g-123", got.ProviderID)
	assert.Equal(t, "jane@acme.test", got.Email)
	assert.Equal(t, "acme", got.Org)
	assert.Equal(t, "ya29.akses", got.AccessToken)
	assert.Equal(t, "1//refresh", got.RefreshToken)
	assert.Equal(t, "eyJ.id", got.IDToken)
	assert.True(t, got.ExpiresAt > time.Now().Unix())
}

func TestPendingStore_NoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newPendingStore(t)

	w := httptest.NewRecorder()
	c := contextWithCookies(w, nil)

	_, err := store.Read(c)
	assert.ErrorIs(t, err, oautherrors.ErrNoPendingSignIn)
}

func TestPendingStore_TamperedCookieCleared(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newPendingStore(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, store.Set(c, oauth.PendingData{Provider: "google", ProviderID: "g-1", Email: "a@b.test"}))

	cookies := w.Result().Cookies()
	for _, ck := range cookies {
		if ck.Name == oauth.PendingCookieName {
			ck.Value = ck.Value[:len(ck.Value)-4] + "AAAA"
		}
	}

	w2 := httptest.NewRecorder()
	c2 := contextWithCookies(w2, cookies)

	_, err := store.Read(c2)
	assert.ErrorIs(t, err, oautherrors.ErrPendingInvalid)

	// cookie rusak ikut dibersihkan
	cleared := false
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == oauth.PendingCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPendingStore_Expired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec, err := secretbox.New(testKey)
	assert.NoError(t, err)
	store := oauth.NewPendingStore(codec, false)

	// segel payload yang sudah lewat masa berlakunya secara manual
	token, err := codec.Seal(oauth.PendingData{
		Provider:   "google",
		ProviderID: "g-1",
		Email:      "a@b.test",
		ExpiresAt:  time.Now().Add(-time.Minute).Unix(),
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c := contextWithCookies(w, []*http.Cookie{{Name: oauth.PendingCookieName, Value: token}})

	_, err = store.Read(c)
	assert.ErrorIs(t, err, oautherrors.ErrPendingInvalid)
}

func TestPendingCookie_HttpOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newPendingStore(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NoError(t, store.Set(c, oauth.PendingData{Provider: "google", ProviderID: "g-1", Email: "a@b.test"}))

	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.Contains(setCookie, "HttpOnly"))
}
