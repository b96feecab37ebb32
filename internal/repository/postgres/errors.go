package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nvoss/linkstash/internal/domain"
)

const uniqueViolation = "23505"

// conflictOn translates a unique-constraint violation into a domain
// conflict error so store internals never leak past the repository
// boundary. Other errors pass through unchanged.
func conflictOn(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.NewConflict(message)
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
