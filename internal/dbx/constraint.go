package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Violation classifies a failed write that broke a schema constraint.
type Violation int

const (
	NoViolation Violation = iota
	UniqueViolation
	NotNullViolation
	ForeignKeyViolation
	CheckViolation
)

// SQLSTATE codes of the integrity constraint violation class.
const (
	codeNotNull    = "23502"
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// ConstraintError describes the violated constraint.
type ConstraintError struct {
	Violation  Violation
	Constraint string
	Column     string
}

// Constraint inspects err for a PostgreSQL integrity violation.
// It returns nil when err is not a constraint violation.
func Constraint(err error) *ConstraintError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	var v Violation
	switch pgErr.Code {
	case codeUnique:
		v = UniqueViolation
	case codeNotNull:
		v = NotNullViolation
	case codeForeignKey:
		v = ForeignKeyViolation
	case codeCheck:
		v = CheckViolation
	default:
		return nil
	}
	return &ConstraintError{Violation: v, Constraint: pgErr.ConstraintName, Column: pgErr.ColumnName}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraint is non-empty, the violated constraint name must match too.
func IsUniqueViolation(err error, constraint string) bool {
	c := Constraint(err)
	if c == nil || c.Violation != UniqueViolation {
		return false
	}
	return constraint == "" || c.Constraint == constraint
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	c := Constraint(err)
	return c != nil && c.Violation == ForeignKeyViolation
}
