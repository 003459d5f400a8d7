package notificationerrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"notification id is invalid",
		http.StatusBadRequest,
	)
)
