package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

const (
	pgInsufficientPrivilege = "42501"
	pgNotNullViolation      = "23502"
	pgCheckViolation        = "23514"
	pgInvalidText           = "22P02"
	pgUniqueViolation       = "23505"
)

// storeError sorts a driver error into the app taxonomy. Errors the server
// answered with keep their cause; anything else is treated as transport.
func storeError(details string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInsufficientPrivilege:
			return apperror.NewAppError(apperror.ErrPermission, "The store rejected this change", details, err)
		case pgNotNullViolation, pgCheckViolation, pgInvalidText:
			return apperror.NewValidation(details, err)
		}
		return apperror.NewInternal(details, err)
	}
	return apperror.NewTransport(details, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
