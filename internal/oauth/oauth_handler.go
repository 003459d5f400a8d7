package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	oautherrors "go-peoplehub/internal/oauth/errors"
	"go-peoplehub/internal/session"
	"go-peoplehub/internal/shared/apperror"
	"go-peoplehub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	stateCookieName = "oauth_state"
	orgCookieName   = "oauth_org"
	stateTTL        = 10 * time.Minute
)

type Handler struct {
	provider Provider // nil saat OAuth tidak dikonfigurasi
	service  Service
	sessions *session.Manager
	pendings *PendingStore
	frontend string
	secure   bool
	logger   *zap.Logger
}

func NewHandler(provider Provider, service Service, sessions *session.Manager, pendings *PendingStore, frontendURL string, secure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("oauth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("oauth.handler")
	}
	return &Handler{
		provider: provider,
		service:  service,
		sessions: sessions,
		pendings: pendings,
		frontend: frontendURL,
		secure:   secure,
		logger:   l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("oauth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Start menulis nonce state lalu redirect ke consent screen provider.
func (h *Handler) Start(c *gin.Context) {
	if h.provider == nil {
		h.writeServiceError(c, oautherrors.ErrProviderDisabled)
		return
	}

	state := randomState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, int(stateTTL.Seconds()), "/", "", h.secure, true)

	// Hint organisasi (?org=slug) ikut menyeberangi redirect provider lewat
	// cookie sendiri; dipakai pre-fill form join setelah callback.
	if orgHint := c.Query("org"); orgHint != "" {
		c.SetCookie(orgCookieName, orgHint, int(stateTTL.Seconds()), "/", "", h.secure, true)
	}

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback memverifikasi state, menukar code, lalu bercabang: akun dikenal
// langsung dapat session; tidak dikenal masuk state Pending untuk
// onboarding.
func (h *Handler) Callback(c *gin.Context) {
	if h.provider == nil {
		h.writeServiceError(c, oautherrors.ErrProviderDisabled)
		return
	}

	// 1. State harus cocok dengan nonce di cookie
	expected, err := c.Cookie(stateCookieName)
	if err != nil || expected == "" || c.Query("state") != expected {
		h.writeServiceError(c, oautherrors.ErrStateInvalid)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, "", -1, "/", "", h.secure, true)

	// 2. Tukar code dengan profil
	profile, err := h.provider.FetchProfile(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// 3. Akun dikenal → session; tidak dikenal → pending cookie
	result, err := h.service.SignIn(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, ErrUnknownIdentity) {
			orgHint, _ := c.Cookie(orgCookieName)
			c.SetCookie(orgCookieName, "", -1, "/", "", h.secure, true)

			if err := h.pendings.Set(c, PendingData{
				Provider:      profile.Provider,
				ProviderID:    profile.ProviderID,
				Email:         profile.Email,
				Name:          profile.Name,
				AvatarURL:     profile.AvatarURL,
				EmailVerified: profile.EmailVerified,
				Org:           orgHint,
				AccessToken:   profile.AccessToken,
				RefreshToken:  profile.RefreshToken,
				IDToken:       profile.IDToken,
			}); err != nil {
				h.writeServiceError(c, err)
				return
			}
			c.Redirect(http.StatusFound, h.frontend+"/onboarding")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.frontend+"/")
}

// GetPending mengembalikan subset aman dari pending handshake untuk
// pre-fill form onboarding. Token provider tidak pernah ikut keluar.
func (h *Handler) GetPending(c *gin.Context) {
	pending, err := h.pendings.Read(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PendingResponse{
		Provider:   pending.Provider,
		ProviderID: pending.ProviderID,
		Email:      pending.Email,
		Name:       pending.Name,
		AvatarURL:  pending.AvatarURL,
		Org:        pending.Org,
	}, nil)
}

// DeletePending membatalkan handshake; idempotent.
func (h *Handler) DeletePending(c *gin.Context) {
	h.pendings.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"cancelled": true}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req CompleteRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	// Tanpa handshake pending yang valid, penyelesaian = 401 (bukan 404/400
	// seperti di endpoint baca): ini gerbang otorisasi, bukan lookup.
	pending, err := h.pendings.Read(c)
	if err != nil {
		h.writeServiceError(c, oautherrors.ErrPendingAuthRequired)
		return
	}

	result, err := h.service.CompleteRegister(c.Request.Context(), pending, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.pendings.Clear(c)
	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result.User, nil)
}

func (h *Handler) Join(c *gin.Context) {
	var req CompleteJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	pending, err := h.pendings.Read(c)
	if err != nil {
		h.writeServiceError(c, oautherrors.ErrPendingAuthRequired)
		return
	}

	result, err := h.service.CompleteJoin(c.Request.Context(), pending, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.pendings.Clear(c)
	if err := h.sessions.Create(c, result.Session); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result.User, nil)
}

func randomState() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
