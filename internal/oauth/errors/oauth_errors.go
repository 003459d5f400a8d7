package oautherrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrNoPendingSignIn = apperror.New(
		"NO_PENDING_SIGNIN",
		"no pending social sign-in",
		http.StatusNotFound,
	)
	ErrPendingInvalid = apperror.New(
		"PENDING_SIGNIN_INVALID",
		"pending social sign-in is invalid or expired",
		http.StatusBadRequest,
	)
	// Versi 401 untuk endpoint penyelesaian: tanpa cookie pending yang valid,
	// register/join adalah request tanpa otorisasi, bukan resource yang hilang.
	ErrPendingAuthRequired = apperror.New(
		"PENDING_SIGNIN_REQUIRED",
		"sign in with the provider again to continue",
		http.StatusUnauthorized,
	)
	// Body tidak cocok dengan identitas di cookie: kemungkinan CSRF atau
	// manipulasi form. Tidak ada yang dibuat.
	ErrIdentityMismatch = apperror.New(
		"OAUTH_IDENTITY_MISMATCH",
		"submitted identity does not match the pending sign-in",
		http.StatusUnauthorized,
	)
	ErrStateInvalid = apperror.New(
		"OAUTH_STATE_INVALID",
		"oauth state does not match",
		http.StatusUnauthorized,
	)
	ErrExchangeFailed = apperror.New(
		"OAUTH_EXCHANGE_FAILED",
		"could not verify the sign-in with the provider",
		http.StatusBadGateway,
	)
	ErrAlreadyMember = apperror.New(
		apperror.CodeConflict,
		"this email already belongs to an organization",
		http.StatusConflict,
	)
	ErrProviderDisabled = apperror.New(
		"OAUTH_DISABLED",
		"social sign-in is not configured",
		http.StatusNotFound,
	)
)
