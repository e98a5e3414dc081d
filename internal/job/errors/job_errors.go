package joberrors

import (
	"net/http"

	"go-fleetops/internal/shared/apperror"
)

var (
	ErrJobNotFound = apperror.New(
		apperror.CodeNotFound,
		"job not found",
		http.StatusNotFound,
	)
	ErrJobLineNotFound = apperror.New(
		apperror.CodeNotFound,
		"job line not found",
		http.StatusNotFound,
	)
	ErrShiftNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"shift does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"identifier must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrClientNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"client does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid job status transition",
		http.StatusBadRequest,
	)
	ErrJobTerminal = apperror.New(
		apperror.CodeInvalidState,
		"job is in a terminal status and cannot change",
		http.StatusBadRequest,
	)
	ErrLinesNotTimed = apperror.New(
		apperror.CodeInvalidState,
		"job cannot be completed while lines are missing pickup or delivery time",
		http.StatusBadRequest,
	)
	ErrDeliveryBeforePickup = apperror.New(
		apperror.CodeInvalidInput,
		"delivery_time must be on or after pickup_time",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid job_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
)
