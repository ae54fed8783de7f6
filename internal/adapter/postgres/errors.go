package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sitecraft/menu-backend/internal/domain"
)

// MapError converts pgx/pgconn/scany errors to domain errors. It is the
// mapping the entity repository packages use for their hand-written queries.
func MapError(err error, entity, criteria string) error {
	return mapError(err, entity, criteria)
}

// mapError converts pgx/pgconn/scany errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass
// through. Anything unmapped is a store failure and stays a plain wrapped
// error.
func mapError(err error, entity, criteria string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, criteria, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s %s: %w", entity, criteria, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, criteria, domain.ErrConflict)
		case "23503": // foreign_key_violation (missing menu/parent)
			return fmt.Errorf("%s %s: %w", entity, criteria, domain.ErrValidation)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, criteria, domain.ErrValidation)
		case "22P02": // invalid_text_representation (criteria not castable)
			return fmt.Errorf("%s %s: %w", entity, criteria, domain.ErrMalformedQuery)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, criteria, err)
}
