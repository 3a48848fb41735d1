package repository

// dialect isolates the SQL that differs between PostgreSQL and SQLite.
type dialect interface {
	// nameMatch returns a predicate matching column against a
	// case-insensitive substring bound to a single placeholder.
	nameMatch(column string) string
}

// translateError maps storage integrity violations to Conflict (unique and
// primary key) or NotFound (foreign key), and over-wide values to BadRequest.
// Other errors pass through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if translated := translatePgError(err); translated != nil {
		return translated
	}
	if translated := translateSqliteError(err); translated != nil {
		return translated
	}
	return err
}
