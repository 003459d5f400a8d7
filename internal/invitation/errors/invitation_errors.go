package invitationerrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrInvitationNotFound = apperror.New(
		apperror.CodeNotFound,
		"invitation not found",
		http.StatusNotFound,
	)
	ErrInvalidInvitationID = apperror.New(
		apperror.CodeInvalidInput,
		"invitation id is invalid",
		http.StatusBadRequest,
	)
	ErrAlreadyMember = apperror.New(
		apperror.CodeConflict,
		"this email already belongs to a member",
		http.StatusConflict,
	)
	ErrPendingInviteExists = apperror.New(
		apperror.CodeConflict,
		"a pending invitation already exists for this email",
		http.StatusConflict,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invitation token is invalid",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"invitation token has expired",
		http.StatusUnauthorized,
	)
	ErrCannotManageInvitations = apperror.New(
		apperror.CodeForbidden,
		"only managers can manage invitations",
		http.StatusForbidden,
	)
	ErrInvitationNotPending = apperror.New(
		apperror.CodeConflict,
		"invitation has already been used or revoked",
		http.StatusConflict,
	)
)
