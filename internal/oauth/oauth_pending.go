package oauth

import (
	"net/http"
	"time"

	oautherrors "go-peoplehub/internal/oauth/errors"
	"go-peoplehub/internal/shared/secretbox"

	"github.com/gin-gonic/gin"
)

const (
	PendingCookieName = "oauth_pending"
	PendingTTL        = 10 * time.Minute
)

// PendingData adalah profil OAuth yang sudah terverifikasi provider tapi
// belum punya akun lokal. Disegel ke cookie; identitas dan token di dalamnya
// TIDAK pernah diterima dari request body, hanya dibaca balik dari cookie
// yang berhasil didekripsi.
type PendingData struct {
	Provider      string `json:"provider"`
	ProviderID    string `json:"provider_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`

	// Org adalah hint slug organisasi dari awal flow, untuk pre-fill form join.
	Org string `json:"org,omitempty"`

	// Token provider ikut tersegel supaya bisa dipersist saat penyelesaian;
	// tidak pernah muncul di PendingResponse.
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`

	ExpiresAt int64 `json:"exp"`
}

func (p *PendingData) expired() bool {
	return time.Now().Unix() >= p.ExpiresAt
}

// PendingStore membaca/menulis pending handshake lewat cookie terenkripsi.
type PendingStore struct {
	codec  *secretbox.Codec
	secure bool
}

func NewPendingStore(codec *secretbox.Codec, secure bool) *PendingStore {
	return &PendingStore{codec: codec, secure: secure}
}

func (ps *PendingStore) Set(c *gin.Context, data PendingData) error {
	data.ExpiresAt = time.Now().Add(PendingTTL).Unix()

	token, err := ps.codec.Seal(data)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PendingCookieName, token, int(PendingTTL.Seconds()), "/", "", ps.secure, true)
	return nil
}

// Read mengembalikan ErrNoPendingSignIn saat cookie tidak ada, dan
// ErrPendingInvalid (sambil menghapus cookie) saat rusak atau kadaluarsa.
func (ps *PendingStore) Read(c *gin.Context) (*PendingData, error) {
	token, err := c.Cookie(PendingCookieName)
	if err != nil || token == "" {
		return nil, oautherrors.ErrNoPendingSignIn
	}

	var data PendingData
	if !ps.codec.Open(token, &data) {
		ps.Clear(c)
		return nil, oautherrors.ErrPendingInvalid
	}
	if data.expired() {
		ps.Clear(c)
		return nil, oautherrors.ErrPendingInvalid
	}
	return &data, nil
}

func (ps *PendingStore) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PendingCookieName, "", -1, "/", "", ps.secure, true)
}
