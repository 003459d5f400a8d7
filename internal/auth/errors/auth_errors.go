package autherrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	// Satu pesan untuk email tak terdaftar maupun password salah,
	// supaya tidak membocorkan keberadaan akun.
	ErrInvalidCredentials = apperror.New(
		"INVALID_CREDENTIALS",
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrAccountLocked = apperror.New(
		"ACCOUNT_LOCKED",
		"account temporarily locked due to repeated failed logins",
		http.StatusForbidden,
	)
	ErrTooManyAttempts = apperror.New(
		"TOO_MANY_ATTEMPTS",
		"too many failed logins from this address",
		http.StatusTooManyRequests,
	)
	ErrAccountDisabled = apperror.New(
		"ACCOUNT_DISABLED",
		"account has been deactivated",
		http.StatusForbidden,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"email already registered",
		http.StatusConflict,
	)
	ErrPasswordLoginUnavailable = apperror.New(
		"PASSWORD_LOGIN_UNAVAILABLE",
		"this account uses social sign-in",
		http.StatusUnauthorized,
	)
)
