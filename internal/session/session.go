package session

import (
	"net/http"
	"time"

	"go-peoplehub/internal/shared/secretbox"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "session"
	TTL        = 7 * 24 * time.Hour
)

// Session adalah payload yang disegel ke dalam cookie. Cookie-nya ADALAH
// session: tidak ada store server-side, jadi integritas sepenuhnya
// bergantung pada enkripsi ter-autentikasi, bukan revocation.
type Session struct {
	UserID           uuid.UUID `json:"user_id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationSlug string    `json:"organization_slug"`
	ExpiresAt        int64     `json:"exp"`
}

func (s *Session) valid() bool {
	if s.UserID == uuid.Nil || s.Email == "" || s.Role == "" {
		return false
	}
	if s.OrganizationID == uuid.Nil || s.OrganizationSlug == "" {
		return false
	}
	return time.Now().Unix() < s.ExpiresAt
}

type Manager struct {
	codec  *secretbox.Codec
	secure bool
}

func NewManager(codec *secretbox.Codec, secure bool) *Manager {
	return &Manager{codec: codec, secure: secure}
}

// Create menulis session baru dalam satu cookie write, menimpa session lama.
func (m *Manager) Create(c *gin.Context, s Session) error {
	s.ExpiresAt = time.Now().Add(TTL).Unix()

	token, err := m.codec.Seal(s)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(TTL.Seconds()), "/", "", m.secure, true)
	return nil
}

// Read mengembalikan nil untuk SEMUA kondisi tidak valid: cookie tidak ada,
// gagal didekripsi, field wajib kosong, atau kadaluarsa. Session parsial
// tidak pernah dipercaya sebagian.
func (m *Manager) Read(c *gin.Context) *Session {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return nil
	}

	var s Session
	if !m.codec.Open(token, &s) {
		// cookie rusak/dimodifikasi: bersihkan supaya tidak dikirim ulang
		m.Destroy(c)
		return nil
	}

	if !s.valid() {
		return nil
	}
	return &s
}

// Destroy menghapus cookie; aman dipanggil walau session tidak ada.
func (m *Manager) Destroy(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}
