package repository

import (
	"errors"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- PostgreSQL specifics ---

type pgDialect struct{}

func (pgDialect) nameMatch(column string) string {
	return fmt.Sprintf("unaccent(LOWER(%s)) LIKE '%%' || unaccent(LOWER(?)) || '%%'", column)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgStringTooLong       = "22001"
)

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return apperr.Wrap(apperr.Conflict, err, "resource already exists")
	case pgForeignKeyViolation:
		return apperr.Wrap(apperr.NotFound, err, "referenced resource not found")
	case pgStringTooLong:
		return apperr.Wrap(apperr.BadRequest, err, "value too long")
	}
	return nil
}
