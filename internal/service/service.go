// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
//
// Every error a service returns to a caller is either a *model.Error (client
// fault: validation, missing row, conflict) or an internal failure wrapped
// with context.
package service

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

// Checker is the slice of a store needed for referential checks. Every
// store in this package satisfies it.
type Checker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserStore persists users.
type UserStore interface {
	Checker
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	Update(ctx context.Context, u model.User) (model.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.User, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.User, error)
}

// OrganizerStore persists organizers. Create uses id when it is non-nil.
type OrganizerStore interface {
	Checker
	Create(ctx context.Context, name string, id *int64) (model.Organizer, error)
	GetByID(ctx context.Context, id int64) (model.Organizer, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, withEvents bool) ([]model.Organizer, error)
}

// EventTypeStore persists event types.
type EventTypeStore interface {
	Checker
	Create(ctx context.Context, name string) (model.EventType, error)
	GetByID(ctx context.Context, id int64) (model.EventType, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.EventType, error)
}

// EventStore persists events.
type EventStore interface {
	Checker
	Create(ctx context.Context, e model.Event) (model.Event, error)
	GetByID(ctx context.Context, id int64) (model.Event, error)
	Update(ctx context.Context, e model.Event) (model.Event, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
}

// ReservationStore persists reservations. Reserve enforces the capacity
// and one-reservation-per-user rules atomically.
type ReservationStore interface {
	Reserve(ctx context.Context, userID, eventID int64) (model.Reservation, error)
	GetByID(ctx context.Context, id int64) (model.Reservation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.ReservationFilter) ([]model.Reservation, error)
}

// mustExist returns notFound when store has no row with id.
func mustExist(ctx context.Context, store Checker, id int64, notFound error) error {
	ok, err := store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check reference %d: %w", id, err)
	}
	if !ok {
		return notFound
	}
	return nil
}
