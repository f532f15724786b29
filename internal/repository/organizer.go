package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

// OrganizerRepository handles persistence for organizers.
type OrganizerRepository struct {
	db *pgxpool.Pool
}

// NewOrganizerRepository constructs an OrganizerRepository.
func NewOrganizerRepository(db *pgxpool.Pool) *OrganizerRepository {
	return &OrganizerRepository{db: db}
}

func scanOrganizer(row pgx.CollectableRow) (model.Organizer, error) {
	var o model.Organizer
	err := row.Scan(&o.ID, &o.Name)
	return o, err
}

// Create inserts an organizer. When id is nil the store generates one;
// otherwise the caller's id is used and the id sequence is moved past it so
// later generated ids do not collide.
func (r *OrganizerRepository) Create(ctx context.Context, name string, id *int64) (model.Organizer, error) {
	o := model.Organizer{Name: name}
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if id == nil {
			return tx.QueryRow(ctx,
				`INSERT INTO organizers (name) VALUES ($1) RETURNING id`, name,
			).Scan(&o.ID)
		}

		o.ID = *id
		if _, err := tx.Exec(ctx,
			`INSERT INTO organizers (id, name) VALUES ($1, $2)`, o.ID, name,
		); err != nil {
			return err
		}
		// Never move the sequence backwards: rows above MAX(id) may have been
		// deleted, or be held by an uncommitted insert.
		_, err := tx.Exec(ctx,
			`SELECT setval('organizers_id_seq',
			               GREATEST((SELECT MAX(id) FROM organizers),
			                        (SELECT last_value FROM organizers_id_seq),
			                        1))`)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.Organizer{}, ErrDuplicate
		}
		return model.Organizer{}, fmt.Errorf("insert organizer: %w", err)
	}
	return o, nil
}

// GetByID returns a single organizer or ErrNotFound.
func (r *OrganizerRepository) GetByID(ctx context.Context, id int64) (model.Organizer, error) {
	rows, _ := r.db.Query(ctx, `SELECT id, name FROM organizers WHERE id = $1`, id)
	o, err := pgx.CollectExactlyOneRow(rows, scanOrganizer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Organizer{}, ErrNotFound
		}
		return model.Organizer{}, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

// Delete removes an organizer that owns no events.
func (r *OrganizerRepository) Delete(ctx context.Context, id int64) error {
	return deleteGuarded(ctx, r.db, "organizers", id, "events", "organizer_id")
}

// List returns organizers ordered by id. With withEvents set only organizers
// owning at least one event are returned.
func (r *OrganizerRepository) List(ctx context.Context, withEvents bool) ([]model.Organizer, error) {
	query := `SELECT id, name FROM organizers ORDER BY id`
	if withEvents {
		query = `SELECT o.id, o.name
		         FROM organizers o
		         WHERE EXISTS (SELECT 1 FROM events e WHERE e.organizer_id = o.id)
		         ORDER BY o.id`
	}
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	organizers, err := pgx.CollectRows(rows, scanOrganizer)
	if err != nil {
		return nil, fmt.Errorf("scan organizers: %w", err)
	}
	return organizers, nil
}

// Exists reports whether an organizer with id exists.
func (r *OrganizerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "organizers", id)
}
