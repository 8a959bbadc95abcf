package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrNotUnique is returned when an insert collides with an existing key,
	// e.g. a duplicate (unit_id, sq) pair.
	ErrNotUnique = errors.New("duplicate key")
	// ErrForeignKey is returned when a row references a missing parent or a
	// delete would orphan dependent rows.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrConstraint is returned for the remaining database constraint failures.
	ErrConstraint = errors.New("constraint violation")
)

// Postgres error classes the schema constraints can raise.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// translate maps driver errors onto the store error taxonomy so the service
// layer never has to know which database is underneath. The sqlite branch
// matches on message text because the driver does not expose error codes
// through gorm.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrNotUnique, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
		case pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrNotUnique, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", ErrForeignKey, msg)
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %s", ErrConstraint, msg)
	}

	return err
}
