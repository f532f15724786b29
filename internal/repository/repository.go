// Package repository implements all database queries for the reservation system.
// It uses pgx directly (no ORM); guards that read and then write run inside a
// single transaction.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key (username, name, id) is taken.
	ErrDuplicate = errors.New("duplicate key")

	// ErrHasDependents is returned when a delete would orphan referencing rows.
	ErrHasDependents = errors.New("row is still referenced")

	// ErrMissingReference is returned when an insert or update names a
	// foreign key that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")

	// ErrEventFull is returned when an event has no remaining slots.
	ErrEventFull = errors.New("event is fully booked")

	// ErrAlreadyReserved is returned when the same user reserves an event twice.
	ErrAlreadyReserved = errors.New("user already has a reservation for this event")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// withTx runs fn inside a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// lockRow takes a row-level exclusive lock on table.id inside tx, returning
// ErrNotFound when the row is absent. Concurrent inserts of rows referencing
// it block on their foreign-key check until tx finishes.
func lockRow(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	var locked int64
	err := tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, table), id,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock %s row: %w", table, err)
	}
	return nil
}

// deleteGuarded deletes table.id unless a row in depTable references it
// through depColumn. The parent row is locked first so a concurrent insert of
// a dependent cannot slip between the check and the delete.
func deleteGuarded(ctx context.Context, db *pgxpool.Pool, table string, id int64, depTable, depColumn string) error {
	return withTx(ctx, db, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, table, id); err != nil {
			return err
		}

		var referenced bool
		err := tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, depTable, depColumn), id,
		).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("check %s references: %w", depTable, err)
		}
		if referenced {
			return ErrHasDependents
		}

		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
			if isForeignKeyViolation(err) {
				return ErrHasDependents
			}
			return fmt.Errorf("delete %s: %w", table, err)
		}
		return nil
	})
}

// exists reports whether table has a row with the given id.
func exists(ctx context.Context, db *pgxpool.Pool, table string, id int64) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check %s exists: %w", table, err)
	}
	return ok, nil
}
