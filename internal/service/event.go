package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-reservations/internal/clock"
	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

var (
	errEventNotFound  = model.NotFoundf("event does not exist")
	errEventIDMissing = model.NotFoundf("the eventID does not exist")
)

// EventListParams carries the raw query parameters of GET /api/event.
// Empty strings mean "not filtered".
type EventListParams struct {
	OrganizerID string
	EventTypeID string
	DateTime    string
	UserIDs     string
}

// EventService orchestrates event operations.
type EventService struct {
	events     EventStore
	types      Checker
	organizers Checker
	clock      clock.Clock
	validate   *Validator
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, types, organizers Checker, clk clock.Clock, v *Validator) *EventService {
	return &EventService{
		events:     events,
		types:      types,
		organizers: organizers,
		clock:      clk,
		validate:   v,
	}
}

// validateFields trims f in place, then checks req (which embeds f) against
// its field rules and requires a future date.
func (s *EventService) validateFields(req any, f *model.EventFields) error {
	f.Name = strings.TrimSpace(f.Name)
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	return checkFuture(int64(*f.DateTime), clock.NowMillis(s.clock))
}

// Create validates the request and stores a new event. Unknown event type
// or organizer ids are client errors here, not missing resources.
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest) (model.Event, error) {
	if err := s.validateFields(&req, &req.EventFields); err != nil {
		return model.Event{}, err
	}
	if err := mustExist(ctx, s.types, int64(*req.EventTypeID),
		model.Validationf("the eventTypeID does not exist")); err != nil {
		return model.Event{}, err
	}
	if err := mustExist(ctx, s.organizers, int64(*req.OrganizerID),
		model.Validationf("the organizerID does not exist")); err != nil {
		return model.Event{}, err
	}

	e, err := s.events.Create(ctx, req.Event(0))
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return model.Event{}, model.Validationf("the eventTypeID or organizerID does not exist")
		}
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// Update replaces every field of an existing event.
func (s *EventService) Update(ctx context.Context, req model.UpdateEventRequest) (model.Event, error) {
	if err := s.validateFields(&req, &req.EventFields); err != nil {
		return model.Event{}, err
	}
	if err := mustExist(ctx, s.events, int64(*req.ID), errEventNotFound); err != nil {
		return model.Event{}, err
	}
	if err := mustExist(ctx, s.types, int64(*req.EventTypeID),
		model.NotFoundf("the eventTypeID does not exist")); err != nil {
		return model.Event{}, err
	}
	if err := mustExist(ctx, s.organizers, int64(*req.OrganizerID),
		model.NotFoundf("the organizerID does not exist")); err != nil {
		return model.Event{}, err
	}

	e, err := s.events.Update(ctx, req.Event(int64(*req.ID)))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return model.Event{}, errEventNotFound
		case errors.Is(err, repository.ErrMissingReference):
			return model.Event{}, model.NotFoundf("the eventTypeID or organizerID does not exist")
		}
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

// Get returns the event identified by rawID.
func (s *EventService) Get(ctx context.Context, rawID string) (model.Event, error) {
	id, err := ParseID("event ID", rawID)
	if err != nil {
		return model.Event{}, err
	}
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Event{}, errEventNotFound
		}
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// Delete removes an event that has no reservations.
func (s *EventService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("event ID", rawID)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errEventNotFound
		case errors.Is(err, repository.ErrHasDependents):
			return model.Conflictf("event has reservations, therefore it cannot be deleted")
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// List returns the events matching all filters present in p. A dateTime
// filter in the past is rejected.
func (s *EventService) List(ctx context.Context, p EventListParams) ([]model.Event, error) {
	var (
		f   model.EventFilter
		err error
	)
	if f.OrganizerID, err = optionalID("organizerID", p.OrganizerID); err != nil {
		return nil, err
	}
	if f.EventTypeID, err = optionalID("eventTypeID", p.EventTypeID); err != nil {
		return nil, err
	}
	if f.DateTime, err = optionalID("dateTime", p.DateTime); err != nil {
		return nil, err
	}
	if f.DateTime != nil && *f.DateTime < clock.NowMillis(s.clock) {
		return nil, model.Validationf("invalid or past date")
	}
	if strings.TrimSpace(p.UserIDs) != "" {
		if f.UserIDs, err = ParseIDList("userIDs", p.UserIDs); err != nil {
			return nil, err
		}
	}

	events, err := s.events.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
