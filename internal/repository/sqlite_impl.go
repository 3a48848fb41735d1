package repository

import (
	"errors"
	"fmt"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/mattn/go-sqlite3"
)

// --- SQLite specifics ---

type sqliteDialect struct{}

func (sqliteDialect) nameMatch(column string) string {
	return fmt.Sprintf("LOWER(%s) LIKE '%%' || LOWER(?) || '%%'", column)
}

func translateSqliteError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return nil
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return apperr.Wrap(apperr.Conflict, err, "resource already exists")
	case sqlite3.ErrConstraintForeignKey:
		return apperr.Wrap(apperr.NotFound, err, "referenced resource not found")
	}
	return nil
}
