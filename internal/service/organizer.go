package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

var errOrganizerNotFound = model.NotFoundf("organizer not found")

// OrganizerService orchestrates organizer operations.
type OrganizerService struct {
	organizers OrganizerStore
	validate   *Validator
}

// NewOrganizerService constructs an OrganizerService.
func NewOrganizerService(organizers OrganizerStore, v *Validator) *OrganizerService {
	return &OrganizerService{organizers: organizers, validate: v}
}

// Create validates the request and stores a new organizer, using the
// caller's id when one is supplied.
func (s *OrganizerService) Create(ctx context.Context, req model.CreateOrganizerRequest) (model.Organizer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return model.Organizer{}, err
	}

	o, err := s.organizers.Create(ctx, req.Name, model.IntPtr(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Organizer{}, model.Conflictf("an organizer with the specified name or id already exists")
		}
		return model.Organizer{}, fmt.Errorf("create organizer: %w", err)
	}
	return o, nil
}

// Get returns the organizer identified by rawID.
func (s *OrganizerService) Get(ctx context.Context, rawID string) (model.Organizer, error) {
	id, err := ParseID("organizer ID", rawID)
	if err != nil {
		return model.Organizer{}, err
	}
	o, err := s.organizers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Organizer{}, errOrganizerNotFound
		}
		return model.Organizer{}, fmt.Errorf("get organizer: %w", err)
	}
	return o, nil
}

// Delete removes an organizer that owns no events.
func (s *OrganizerService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("organizer ID", rawID)
	if err != nil {
		return err
	}
	if err := s.organizers.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errOrganizerNotFound
		case errors.Is(err, repository.ErrHasDependents):
			return model.Conflictf("organizer has events, therefore it cannot be deleted")
		}
		return fmt.Errorf("delete organizer: %w", err)
	}
	return nil
}

// List returns organizers. hasEvents is the raw query value, nil when the
// parameter is absent: "true" or "" selects organizers owning at least one
// event, "false" or nil selects all of them.
func (s *OrganizerService) List(ctx context.Context, hasEvents *string) ([]model.Organizer, error) {
	withEvents := false
	if hasEvents != nil {
		switch strings.ToLower(strings.TrimSpace(*hasEvents)) {
		case "true", "":
			withEvents = true
		case "false":
		default:
			return nil, model.Validationf("hasEvents must be true, false or empty")
		}
	}

	organizers, err := s.organizers.List(ctx, withEvents)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return organizers, nil
}
