package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// IsConstraintViolation reports whether err was caused by any integrity constraint
func IsConstraintViolation(err error) bool {
	switch pgCode(err) {
	case codeForeignKeyViolation, codeUniqueViolation, codeNotNullViolation, codeCheckViolation:
		return true
	}
	return false
}
