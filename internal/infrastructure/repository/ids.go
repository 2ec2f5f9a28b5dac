package repository

import (
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"
)

// storableID reports whether id fits the BIGINT key columns.
// Larger ids cannot exist in the store and are treated as absent without a query.
func storableID(id uint) bool {
	return uint64(id) <= math.MaxInt64
}

// foreignKeyViolation mirrors the error PostgreSQL returns for professor_events_professor_id_fkey
func foreignKeyViolation(professorID uint) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "professor_events" violates foreign key constraint "professor_events_professor_id_fkey"`,
		Detail:         fmt.Sprintf(`Key (professor_id)=(%d) is not present in table "professors".`, professorID),
		TableName:      "professor_events",
		ConstraintName: "professor_events_professor_id_fkey",
	}
}
