package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

const eventColumns = `id, event_type_id, organizer_id, name, price, date_time,
	location_latitude, location_longitude, max_participants`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.CollectableRow) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.EventTypeID, &e.OrganizerID, &e.Name, &e.Price, &e.DateTime,
		&e.LocationLatitude, &e.LocationLongitude, &e.MaxParticipants)
	return e, err
}

// Create inserts an event and returns it with its generated id. A missing
// event type or organizer yields ErrMissingReference.
func (r *EventRepository) Create(ctx context.Context, e model.Event) (model.Event, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (event_type_id, organizer_id, name, price, date_time,
		                     location_latitude, location_longitude, max_participants)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		e.EventTypeID, e.OrganizerID, e.Name, e.Price, e.DateTime,
		e.LocationLatitude, e.LocationLongitude, e.MaxParticipants,
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Event{}, ErrMissingReference
		}
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (model.Event, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := pgx.CollectExactlyOneRow(rows, scanEvent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, ErrNotFound
		}
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// Update overwrites every column of the event with e.ID.
func (r *EventRepository) Update(ctx context.Context, e model.Event) (model.Event, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE events
		 SET event_type_id = $2, organizer_id = $3, name = $4, price = $5, date_time = $6,
		     location_latitude = $7, location_longitude = $8, max_participants = $9
		 WHERE id = $1`,
		e.ID, e.EventTypeID, e.OrganizerID, e.Name, e.Price, e.DateTime,
		e.LocationLatitude, e.LocationLongitude, e.MaxParticipants,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Event{}, ErrMissingReference
		}
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Event{}, ErrNotFound
	}
	return e, nil
}

// Delete removes an event that has no reservations.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return deleteGuarded(ctx, r.db, "events", id, "reservations", "event_id")
}

// List returns the events matching every filter that is set, ordered by id.
func (r *EventRepository) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.OrganizerID != nil {
		add("organizer_id = $%d", *f.OrganizerID)
	}
	if f.EventTypeID != nil {
		add("event_type_id = $%d", *f.EventTypeID)
	}
	if f.DateTime != nil {
		add("date_time = $%d", *f.DateTime)
	}
	if len(f.UserIDs) > 0 {
		add("id IN (SELECT event_id FROM reservations WHERE user_id = ANY($%d))", f.UserIDs)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

// Exists reports whether an event with id exists.
func (r *EventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "events", id)
}
