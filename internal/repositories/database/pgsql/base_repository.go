package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can
// run either standalone or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// pgUniqueViolation is the SQLSTATE of a UNIQUE constraint failure.
const pgUniqueViolation = "23505"

// translateError maps driver errors onto the application's error categories.
// notFound is returned for pgx.ErrNoRows.
func translateError(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, op, pgErr.ConstraintName)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewAppError(500, "failed to "+op, err)
}

// validUUIDs drops anything that is not a UUID; such IDs cannot match a row
// and would otherwise make Postgres reject the whole uuid[] parameter.
func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			out = append(out, id)
		}
	}
	return out
}

// isUUID reports whether id can be compared against a uuid column.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
