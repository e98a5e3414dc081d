package attachmenterrors

import (
	"net/http"

	"go-fleetops/internal/shared/apperror"
)

var (
	ErrAttachmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"attachment not found",
		http.StatusNotFound,
	)
	ErrInvalidEntityType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity_type",
		http.StatusBadRequest,
	)
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"entity_id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"invalid category",
		http.StatusBadRequest,
	)
	ErrEntityNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"referenced entity does not exist",
		http.StatusBadRequest,
	)
	ErrEmptyContent = apperror.New(
		apperror.CodeInvalidInput,
		"attachment content must not be empty",
		http.StatusBadRequest,
	)
)
