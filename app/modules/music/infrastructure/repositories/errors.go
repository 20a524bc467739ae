package musicdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the music repository layer.
// These describe storage outcomes; the service decides what they mean to callers.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("music record not found")

	// ErrNoRowsAffected indicates an UPDATE/DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrUniqueViolation indicates the storage engine rejected a write on a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint rejection from
// any of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// classifyWriteError tags driver-level unique violations with ErrUniqueViolation
// so callers only need errors.Is.
func classifyWriteError(err error) error {
	if IsUniqueViolation(err) && !errors.Is(err, ErrUniqueViolation) {
		return errors.Join(ErrUniqueViolation, err)
	}
	return err
}
