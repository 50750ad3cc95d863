package infrastructure

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"schoolsched_backend/internals/apperr"
)

// TranslateDBError maps a storage-native failure to a domain error kind:
// uniqueness violation -> AlreadyExists, check/foreign-key violation ->
// InvalidObject, anything else -> ExecutionFailed. Postgres is matched by
// SQLSTATE; the message fallbacks cover the SQLite test driver, whose
// wording the original deployment also produced.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		// already translated by a specialized repository path
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperr.Wrap(apperr.ErrAlreadyExists, "unique constraint violated", err)
		case "23514":
			return apperr.Wrap(apperr.ErrInvalidObject, "check constraint violated", err)
		case "23503":
			return apperr.Wrap(apperr.ErrInvalidObject, "foreign key constraint violated", err)
		}
		return apperr.Wrap(apperr.ErrExecutionFailed, "database error", err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return apperr.Wrap(apperr.ErrAlreadyExists, "unique constraint violated", err)
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperr.Wrap(apperr.ErrInvalidObject, "constraint violated", err)
	}
	return apperr.Wrap(apperr.ErrExecutionFailed, "database error", err)
}
