package invitation_test

import (
	"testing"
	"time"

	"go-peoplehub/internal/invitation"
	invitationerrors "go-peoplehub/internal/invitation/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var tokenSecret = []byte("unit-test-invitation-secret-0123456789")

func TestInvitationToken_RoundTrip(t *testing.T) {
	inv := &invitation.Invitation{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Email:          "calon@contoh.com",
		Role:           "COWORKER",
		ExpiresAt:      time.Now().UTC().Add(invitation.TTL),
	}

	token, err := invitation.SignToken(tokenSecret, inv)
	assert.NoError(t, err)

	claims, err := invitation.ParseToken(tokenSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, inv.ID.String(), claims.InvitationID)
	assert.Equal(t, inv.OrganizationID.String(), claims.OrganizationID)
	assert.Equal(t, inv.Email, claims.Email)
	assert.Equal(t, inv.Role, claims.Role)
}

func TestInvitationToken_Expired(t *testing.T) {
	inv := &invitation.Invitation{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Email:          "telat@contoh.com",
		Role:           "EMPLOYEE",
		ExpiresAt:      time.Now().UTC().Add(-time.Hour),
	}

	token, err := invitation.SignToken(tokenSecret, inv)
	assert.NoError(t, err)

	_, err = invitation.ParseToken(tokenSecret, token)
	assert.ErrorIs(t, err, invitationerrors.ErrTokenExpired)
}

func TestInvitationToken_WrongSecret(t *testing.T) {
	inv := &invitation.Invitation{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Email:          "salah@contoh.com",
		Role:           "EMPLOYEE",
		ExpiresAt:      time.Now().UTC().Add(invitation.TTL),
	}

	token, err := invitation.SignToken(tokenSecret, inv)
	assert.NoError(t, err)

	_, err = invitation.ParseToken([]byte("another-secret-entirely-0123456789ab"), token)
	assert.ErrorIs(t, err, invitationerrors.ErrInvalidToken)
}

func TestInvitationToken_Garbage(t *testing.T) {
	_, err := invitation.ParseToken(tokenSecret, "bukan.jwt.sama-sekali")
	assert.ErrorIs(t, err, invitationerrors.ErrInvalidToken)
}
