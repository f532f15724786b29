package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

// ReservationRepository handles persistence for reservations.
type ReservationRepository struct {
	db *pgxpool.Pool
}

// NewReservationRepository constructs a ReservationRepository.
func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func scanReservation(row pgx.CollectableRow) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.EventID, &res.UserID)
	return res, err
}

// Reserve books one slot of eventID for userID.
//
// A naive read-then-write lets two requests for the last slot both see a free
// seat and both insert. Reserve instead locks the event row with
// SELECT … FOR UPDATE, so concurrent reservations for the same event queue up
// and each recounts after the previous one committed. The unique index on
// (user_id, event_id) rejects a duplicate that races past the check.
func (r *ReservationRepository) Reserve(ctx context.Context, userID, eventID int64) (model.Reservation, error) {
	res := model.Reservation{EventID: eventID, UserID: userID}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var maxParticipants int64
		err := tx.QueryRow(ctx,
			`SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`, eventID,
		).Scan(&maxParticipants)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock event row: %w", err)
		}

		var duplicate bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM reservations WHERE event_id = $1 AND user_id = $2)`,
			eventID, userID,
		).Scan(&duplicate)
		if err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if duplicate {
			return ErrAlreadyReserved
		}

		var reserved int64
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM reservations WHERE event_id = $1`, eventID,
		).Scan(&reserved)
		if err != nil {
			return fmt.Errorf("count reservations: %w", err)
		}
		if reserved >= maxParticipants {
			return ErrEventFull
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO reservations (event_id, user_id) VALUES ($1, $2) RETURNING id`,
			eventID, userID,
		).Scan(&res.ID)
		switch {
		case err == nil:
			return nil
		case isUniqueViolation(err):
			return ErrAlreadyReserved
		case isForeignKeyViolation(err):
			return ErrMissingReference
		default:
			return fmt.Errorf("insert reservation: %w", err)
		}
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// GetByID returns a single reservation or ErrNotFound.
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (model.Reservation, error) {
	rows, _ := r.db.Query(ctx, `SELECT id, event_id, user_id FROM reservations WHERE id = $1`, id)
	res, err := pgx.CollectExactlyOneRow(rows, scanReservation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reservation{}, ErrNotFound
		}
		return model.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// Delete removes a reservation, freeing its slot.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns reservations ordered by id, restricted to the users or events
// named in f when either list is set.
func (r *ReservationRepository) List(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	query := `SELECT id, event_id, user_id FROM reservations`
	var args []any
	switch {
	case len(f.UserIDs) > 0:
		query += ` WHERE user_id = ANY($1)`
		args = append(args, f.UserIDs)
	case len(f.EventIDs) > 0:
		query += ` WHERE event_id = ANY($1)`
		args = append(args, f.EventIDs)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	reservations, err := pgx.CollectRows(rows, scanReservation)
	if err != nil {
		return nil, fmt.Errorf("scan reservations: %w", err)
	}
	return reservations, nil
}
