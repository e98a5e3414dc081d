package invoice

import (
	"errors"
	"strings"

	invoiceerrors "go-fleetops/internal/invoice/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_invoices_job" {
			return invoiceerrors.ErrJobAlreadyInvoiced
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_invoices_job") {
		return invoiceerrors.ErrJobAlreadyInvoiced
	}

	return err
}

// IsDuplicateInvoiceError reports whether err is the unique-job violation.
// The consumer uses it to treat redelivered job_completed events as no-ops.
func IsDuplicateInvoiceError(err error) bool {
	return errors.Is(mapRepositoryError(err), invoiceerrors.ErrJobAlreadyInvoiced)
}
