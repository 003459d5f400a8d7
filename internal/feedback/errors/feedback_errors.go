package feedbackerrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrFeedbackNotFound = apperror.New(
		apperror.CodeNotFound,
		"feedback not found",
		http.StatusNotFound,
	)
	ErrInvalidFeedbackID = apperror.New(
		apperror.CodeInvalidInput,
		"feedback id is invalid",
		http.StatusBadRequest,
	)
	ErrSelfFeedback = apperror.New(
		"SELF_FEEDBACK",
		"you cannot give feedback to yourself",
		http.StatusUnprocessableEntity,
	)
	ErrReceiverNotFound = apperror.New(
		apperror.CodeNotFound,
		"feedback receiver not found",
		http.StatusNotFound,
	)
	// Dari luar tidak dibedakan dengan not found untuk menghindari
	// kebocoran keberadaan feedback orang lain.
	ErrFeedbackNotVisible = apperror.New(
		apperror.CodeNotFound,
		"feedback not found",
		http.StatusNotFound,
	)
)
