package absenceerrors

import (
	"net/http"

	"go-peoplehub/internal/shared/apperror"
)

var (
	ErrAbsenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"absence request not found",
		http.StatusNotFound,
	)
	ErrInvalidAbsenceID = apperror.New(
		apperror.CodeInvalidInput,
		"absence request id is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrAbsenceOverlap = apperror.New(
		apperror.CodeConflict,
		"an absence request already exists in this period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"absence request is no longer pending",
		http.StatusUnprocessableEntity,
	)
	ErrNotReviewable = apperror.New(
		apperror.CodeForbidden,
		"you cannot review this absence request",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel this absence request",
		http.StatusForbidden,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
)
