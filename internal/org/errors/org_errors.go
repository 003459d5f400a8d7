package orgerrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrOrganizationNotFound = apperror.New(
		apperror.CodeNotFound,
		"organization not found",
		http.StatusNotFound,
	)
	ErrSlugTaken = apperror.New(
		apperror.CodeConflict,
		"organization slug already taken",
		http.StatusConflict,
	)
	ErrInvalidOrganizationName = apperror.New(
		apperror.CodeInvalidInput,
		"organization name is invalid",
		http.StatusBadRequest,
	)
)
