package shift

import (
	"errors"
	"strings"

	shifterrors "go-fleetops/internal/shift/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const activeShiftConstraint = "uq_shifts_driver_active"

// mapRepositoryError converts a violation of the partial unique index behind
// the one-ACTIVE-shift-per-driver rule into the domain sentinel, so two
// racing starts resolve to one winner and one clean rejection.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == activeShiftConstraint {
			return shifterrors.ErrDriverAlreadyOnShift
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, activeShiftConstraint) {
		return shifterrors.ErrDriverAlreadyOnShift
	}

	return err
}
