package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/clinicadev/clinic-api/internal/httperr"
)

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// classify translates driver errors into the error kinds the rest of the
// application understands.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, httperr.ErrRecordNotFound) {
		return httperr.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return httperr.StorageConstraint("unique_violation", pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			return httperr.StorageConstraint("foreign_key_violation", pgErr.ConstraintName, err)
		case pgNotNullViolation:
			return httperr.StorageConstraint("not_null_violation", pgErr.ColumnName, err)
		}
	}

	return httperr.StorageFailure(err)
}
