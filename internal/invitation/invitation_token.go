package invitation

import (
	"errors"
	"time"

	invitationerrors "go-peoplehub/internal/invitation/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims mengikat token ke satu undangan spesifik: id, organisasi, dan
// email penerima. Accept mencocokkan ulang semuanya dengan row di database.
type TokenClaims struct {
	InvitationID   string `json:"inv"`
	OrganizationID string `json:"org"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

func SignToken(secret []byte, inv *Invitation) (string, error) {
	claims := TokenClaims{
		InvitationID:   inv.ID.String(),
		OrganizationID: inv.OrganizationID.String(),
		Email:          inv.Email,
		Role:           inv.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   inv.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(inv.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken memverifikasi signature dan expiry. Token kadaluarsa dan token
// rusak dibedakan supaya penerima tahu harus minta undangan baru.
func ParseToken(secret []byte, token string) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, invitationerrors.ErrTokenExpired
		}
		return nil, invitationerrors.ErrInvalidToken
	}
	return &claims, nil
}
