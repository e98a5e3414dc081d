package shifterrors

import (
	"net/http"

	"go-fleetops/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift not found",
		http.StatusNotFound,
	)
	ErrInvalidDriverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid driver id",
		http.StatusBadRequest,
	)
	ErrDriverNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"driver does not exist",
		http.StatusBadRequest,
	)
	ErrDriverInactive = apperror.New(
		apperror.CodeInvalidState,
		"driver is not active",
		http.StatusBadRequest,
	)
	ErrDriverAlreadyOnShift = apperror.New(
		apperror.CodeConflict,
		"driver already has an active shift",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid shift status transition",
		http.StatusBadRequest,
	)
	ErrShiftTerminal = apperror.New(
		apperror.CodeInvalidState,
		"shift is in a terminal status and cannot change",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be on or after start_time",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
)
