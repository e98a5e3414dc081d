package invoiceerrors

import (
	"net/http"

	"go-fleetops/internal/shared/apperror"
)

var (
	ErrInvalidID = apperror.New(
		apperror.CodeInvalidInput,
		"identifier must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice not found",
		http.StatusNotFound,
	)
	ErrInvoiceItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice item not found",
		http.StatusNotFound,
	)
	ErrJobNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"job does not exist",
		http.StatusBadRequest,
	)
	ErrJobNotCompleted = apperror.New(
		apperror.CodeInvalidState,
		"only a completed job can be invoiced",
		http.StatusBadRequest,
	)
	ErrJobAlreadyInvoiced = apperror.New(
		apperror.CodeConflict,
		"job already has an invoice",
		http.StatusConflict,
	)
	ErrInvoiceNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"invoice items can only change while the invoice is a draft",
		http.StatusBadRequest,
	)
	ErrInvoiceTerminal = apperror.New(
		apperror.CodeInvalidState,
		"invoice is in a terminal status and cannot change",
		http.StatusBadRequest,
	)
	ErrInvoiceHasNoItems = apperror.New(
		apperror.CodeInvalidState,
		"invoice cannot be issued without items",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid invoice status transition",
		http.StatusBadRequest,
	)
)
