package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

var errEventTypeNotFound = model.NotFoundf("event type not found")

// EventTypeService orchestrates event type operations.
type EventTypeService struct {
	types    EventTypeStore
	validate *Validator
}

// NewEventTypeService constructs an EventTypeService.
func NewEventTypeService(types EventTypeStore, v *Validator) *EventTypeService {
	return &EventTypeService{types: types, validate: v}
}

// Create validates the request and stores a new event type.
func (s *EventTypeService) Create(ctx context.Context, req model.CreateEventTypeRequest) (model.EventType, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return model.EventType{}, err
	}

	et, err := s.types.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.EventType{}, model.Conflictf("an event type with the specified name already exists")
		}
		return model.EventType{}, fmt.Errorf("create event type: %w", err)
	}
	return et, nil
}

// Get returns the event type identified by rawID.
func (s *EventTypeService) Get(ctx context.Context, rawID string) (model.EventType, error) {
	id, err := ParseID("event type ID", rawID)
	if err != nil {
		return model.EventType{}, err
	}
	et, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.EventType{}, errEventTypeNotFound
		}
		return model.EventType{}, fmt.Errorf("get event type: %w", err)
	}
	return et, nil
}

// Delete removes an event type that no event references.
func (s *EventTypeService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("event type ID", rawID)
	if err != nil {
		return err
	}
	if err := s.types.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errEventTypeNotFound
		case errors.Is(err, repository.ErrHasDependents):
			return model.Conflictf("event type has events, therefore it cannot be deleted")
		}
		return fmt.Errorf("delete event type: %w", err)
	}
	return nil
}

// List returns every event type.
func (s *EventTypeService) List(ctx context.Context) ([]model.EventType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return types, nil
}
