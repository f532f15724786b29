// Package memory is an in-process implementation of the repository stores.
// It enforces the same unique, foreign-key and capacity rules as the Postgres
// schema and returns the same repository sentinel errors. It backs the
// "memory" store driver and the service and handler tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

// Store holds every table behind one mutex, so each operation is atomic with
// respect to the others.
type Store struct {
	mu sync.Mutex

	users        map[int64]model.User
	organizers   map[int64]model.Organizer
	eventTypes   map[int64]model.EventType
	events       map[int64]model.Event
	reservations map[int64]model.Reservation

	userSeq, organizerSeq, eventTypeSeq, eventSeq, reservationSeq int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:        make(map[int64]model.User),
		organizers:   make(map[int64]model.Organizer),
		eventTypes:   make(map[int64]model.EventType),
		events:       make(map[int64]model.Event),
		reservations: make(map[int64]model.Reservation),
	}
}

// Users returns the user table.
func (s *Store) Users() *Users { return &Users{s} }

// Organizers returns the organizer table.
func (s *Store) Organizers() *Organizers { return &Organizers{s} }

// EventTypes returns the event type table.
func (s *Store) EventTypes() *EventTypes { return &EventTypes{s} }

// Events returns the event table.
func (s *Store) Events() *Events { return &Events{s} }

// Reservations returns the reservation table.
func (s *Store) Reservations() *Reservations { return &Reservations{s} }

// sortedValues returns the map's values ordered by id.
func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users implements service.UserStore.
type Users struct{ s *Store }

func (r *Users) usernameTaken(name string, except int64) bool {
	for _, u := range r.s.users {
		if u.Username == name && u.ID != except {
			return true
		}
	}
	return false
}

// Create inserts u with the next id. Usernames are unique.
func (r *Users) Create(_ context.Context, u model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.usernameTaken(u.Username, -1) {
		return model.User{}, repository.ErrDuplicate
	}
	r.s.userSeq++
	u.ID = r.s.userSeq
	r.s.users[u.ID] = u
	return u, nil
}

// GetByID returns repository.ErrNotFound for an unknown id.
func (r *Users) GetByID(_ context.Context, id int64) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// Update replaces the user with u.ID.
func (r *Users) Update(_ context.Context, u model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return model.User{}, repository.ErrNotFound
	}
	if r.usernameTaken(u.Username, u.ID) {
		return model.User{}, repository.ErrDuplicate
	}
	r.s.users[u.ID] = u
	return u, nil
}

// Delete refuses users that still hold reservations.
func (r *Users) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, res := range r.s.reservations {
		if res.UserID == id {
			return repository.ErrHasDependents
		}
	}
	delete(r.s.users, id)
	return nil
}

// List returns every user ordered by id.
func (r *Users) List(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.users), nil
}

// ListByEvent returns the users holding a reservation for eventID.
func (r *Users) ListByEvent(_ context.Context, eventID int64) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.User{}
	for _, u := range sortedValues(r.s.users) {
		for _, res := range r.s.reservations {
			if res.EventID == eventID && res.UserID == u.ID {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

// Exists reports whether a user with id is stored.
func (r *Users) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// Organizers implements service.OrganizerStore.
type Organizers struct{ s *Store }

// Create stores an organizer under id, or under the next free id when id is nil.
func (r *Organizers) Create(_ context.Context, name string, id *int64) (model.Organizer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.organizers {
		if o.Name == name {
			return model.Organizer{}, repository.ErrDuplicate
		}
	}
	o := model.Organizer{Name: name}
	if id == nil {
		for {
			r.s.organizerSeq++
			if _, taken := r.s.organizers[r.s.organizerSeq]; !taken {
				break
			}
		}
		o.ID = r.s.organizerSeq
	} else {
		if _, taken := r.s.organizers[*id]; taken {
			return model.Organizer{}, repository.ErrDuplicate
		}
		o.ID = *id
		r.s.organizerSeq = max(r.s.organizerSeq, o.ID)
	}
	r.s.organizers[o.ID] = o
	return o, nil
}

// GetByID returns repository.ErrNotFound for an unknown id.
func (r *Organizers) GetByID(_ context.Context, id int64) (model.Organizer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.organizers[id]
	if !ok {
		return model.Organizer{}, repository.ErrNotFound
	}
	return o, nil
}

// Delete refuses organizers that still own events.
func (r *Organizers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.organizers[id]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range r.s.events {
		if e.OrganizerID == id {
			return repository.ErrHasDependents
		}
	}
	delete(r.s.organizers, id)
	return nil
}

// List returns organizers ordered by id, with their events when withEvents is set.
func (r *Organizers) List(_ context.Context, withEvents bool) ([]model.Organizer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := sortedValues(r.s.organizers)
	if !withEvents {
		return all, nil
	}
	out := []model.Organizer{}
	for _, o := range all {
		for _, e := range r.s.events {
			if e.OrganizerID == o.ID {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

// Exists reports whether an organizer with id is stored.
func (r *Organizers) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.organizers[id]
	return ok, nil
}

// EventTypes implements service.EventTypeStore.
type EventTypes struct{ s *Store }

// Create inserts an event type. Names are unique.
func (r *EventTypes) Create(_ context.Context, name string) (model.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, et := range r.s.eventTypes {
		if et.Name == name {
			return model.EventType{}, repository.ErrDuplicate
		}
	}
	r.s.eventTypeSeq++
	et := model.EventType{ID: r.s.eventTypeSeq, Name: name}
	r.s.eventTypes[et.ID] = et
	return et, nil
}

// GetByID returns repository.ErrNotFound for an unknown id.
func (r *EventTypes) GetByID(_ context.Context, id int64) (model.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	et, ok := r.s.eventTypes[id]
	if !ok {
		return model.EventType{}, repository.ErrNotFound
	}
	return et, nil
}

// Delete refuses event types still used by events.
func (r *EventTypes) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.eventTypes[id]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range r.s.events {
		if e.EventTypeID == id {
			return repository.ErrHasDependents
		}
	}
	delete(r.s.eventTypes, id)
	return nil
}

// List returns every event type ordered by id.
func (r *EventTypes) List(_ context.Context) ([]model.EventType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.eventTypes), nil
}

// Exists reports whether an event type with id is stored.
func (r *EventTypes) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.eventTypes[id]
	return ok, nil
}

// Events implements service.EventStore.
type Events struct{ s *Store }

func (r *Events) checkRefs(e model.Event) error {
	if _, ok := r.s.eventTypes[e.EventTypeID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := r.s.organizers[e.OrganizerID]; !ok {
		return repository.ErrMissingReference
	}
	return nil
}

// Create inserts e after checking its event type and organizer exist.
func (r *Events) Create(_ context.Context, e model.Event) (model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(e); err != nil {
		return model.Event{}, err
	}
	r.s.eventSeq++
	e.ID = r.s.eventSeq
	r.s.events[e.ID] = e
	return e, nil
}

// GetByID returns repository.ErrNotFound for an unknown id.
func (r *Events) GetByID(_ context.Context, id int64) (model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return model.Event{}, repository.ErrNotFound
	}
	return e, nil
}

// Update replaces the event with e.ID.
func (r *Events) Update(_ context.Context, e model.Event) (model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.ID]; !ok {
		return model.Event{}, repository.ErrNotFound
	}
	if err := r.checkRefs(e); err != nil {
		return model.Event{}, err
	}
	r.s.events[e.ID] = e
	return e, nil
}

// Delete refuses events that still have reservations.
func (r *Events) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	for _, res := range r.s.reservations {
		if res.EventID == id {
			return repository.ErrHasDependents
		}
	}
	delete(r.s.events, id)
	return nil
}

// List returns the events matching every set field of f, ordered by id.
func (r *Events) List(_ context.Context, f model.EventFilter) ([]model.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Event{}
	for _, e := range sortedValues(r.s.events) {
		if f.OrganizerID != nil && e.OrganizerID != *f.OrganizerID {
			continue
		}
		if f.EventTypeID != nil && e.EventTypeID != *f.EventTypeID {
			continue
		}
		if f.DateTime != nil && e.DateTime != *f.DateTime {
			continue
		}
		if len(f.UserIDs) > 0 && !r.reservedByAny(e.ID, f.UserIDs) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *Events) reservedByAny(eventID int64, userIDs []int64) bool {
	for _, res := range r.s.reservations {
		if res.EventID == eventID && slices.Contains(userIDs, res.UserID) {
			return true
		}
	}
	return false
}

// Exists reports whether an event with id is stored.
func (r *Events) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.events[id]
	return ok, nil
}

// Reservations implements service.ReservationStore.
type Reservations struct{ s *Store }

// Reserve books eventID for userID, honouring capacity and one reservation per user.
func (r *Reservations) Reserve(_ context.Context, userID, eventID int64) (model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[eventID]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	var reserved int64
	for _, res := range r.s.reservations {
		if res.EventID != eventID {
			continue
		}
		if res.UserID == userID {
			return model.Reservation{}, repository.ErrAlreadyReserved
		}
		reserved++
	}
	if reserved >= e.MaxParticipants {
		return model.Reservation{}, repository.ErrEventFull
	}
	if _, ok := r.s.users[userID]; !ok {
		return model.Reservation{}, repository.ErrMissingReference
	}
	r.s.reservationSeq++
	res := model.Reservation{ID: r.s.reservationSeq, EventID: eventID, UserID: userID}
	r.s.reservations[res.ID] = res
	return res, nil
}

// GetByID returns repository.ErrNotFound for an unknown id.
func (r *Reservations) GetByID(_ context.Context, id int64) (model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return res, nil
}

// Delete removes a reservation, freeing its slot.
func (r *Reservations) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reservations, id)
	return nil
}

// List returns the reservations matching f, ordered by id.
func (r *Reservations) List(_ context.Context, f model.ReservationFilter) ([]model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Reservation{}
	for _, res := range sortedValues(r.s.reservations) {
		if len(f.UserIDs) > 0 && !slices.Contains(f.UserIDs, res.UserID) {
			continue
		}
		if len(f.EventIDs) > 0 && !slices.Contains(f.EventIDs, res.EventID) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}
