package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
)

const (
	NotesTable = "notes"
	UsersTable = "users"
)

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgForeignKeyViolation = "23503"
)

var (
	ErrMalformedID      = errors.New("malformed id")
	ErrUniqueViolation  = errors.New("unique constraint violated")
	ErrMissingReference = errors.New("referenced row does not exist")
)

// HandleStoreError records the query duration for operation against table
// and normalizes driver errors. pgx.ErrNoRows and notFound itself both map
// to notFound.
func HandleStoreError(err error, notFound error, operation, table string, startTime time.Time) error {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())

	if err == nil {
		return nil
	}
	if notFound != nil && (errors.Is(err, pgx.ErrNoRows) || errors.Is(err, notFound)) {
		return notFound
	}

	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("failed to %s: %w", operation, ErrUniqueViolation)
		case pgInvalidTextRepr:
			return ErrMalformedID
		case pgForeignKeyViolation:
			return fmt.Errorf("failed to %s: %w", operation, ErrMissingReference)
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}
