package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

// EventTypeRepository handles persistence for event types.
type EventTypeRepository struct {
	db *pgxpool.Pool
}

// NewEventTypeRepository constructs an EventTypeRepository.
func NewEventTypeRepository(db *pgxpool.Pool) *EventTypeRepository {
	return &EventTypeRepository{db: db}
}

func scanEventType(row pgx.CollectableRow) (model.EventType, error) {
	var et model.EventType
	err := row.Scan(&et.ID, &et.Name)
	return et, err
}

// Create inserts an event type and returns it with its generated id.
func (r *EventTypeRepository) Create(ctx context.Context, name string) (model.EventType, error) {
	et := model.EventType{Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO event_types (name) VALUES ($1) RETURNING id`, name,
	).Scan(&et.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.EventType{}, ErrDuplicate
		}
		return model.EventType{}, fmt.Errorf("insert event type: %w", err)
	}
	return et, nil
}

// GetByID returns a single event type or ErrNotFound.
func (r *EventTypeRepository) GetByID(ctx context.Context, id int64) (model.EventType, error) {
	rows, _ := r.db.Query(ctx, `SELECT id, name FROM event_types WHERE id = $1`, id)
	et, err := pgx.CollectExactlyOneRow(rows, scanEventType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EventType{}, ErrNotFound
		}
		return model.EventType{}, fmt.Errorf("get event type: %w", err)
	}
	return et, nil
}

// Delete removes an event type that no event references.
func (r *EventTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteGuarded(ctx, r.db, "event_types", id, "events", "event_type_id")
}

// List returns all event types ordered by id.
func (r *EventTypeRepository) List(ctx context.Context) ([]model.EventType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM event_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	types, err := pgx.CollectRows(rows, scanEventType)
	if err != nil {
		return nil, fmt.Errorf("scan event types: %w", err)
	}
	return types, nil
}

// Exists reports whether an event type with id exists.
func (r *EventTypeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "event_types", id)
}
