package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
	"github.com/Shivanand-hulikatti/event-reservations/internal/repository"
)

var (
	errReservationNotFound = model.NotFoundf("reservation does not exist")
	errUserIDMissing       = model.NotFoundf("the userID does not exist")
)

// ReservationService orchestrates reservation operations.
type ReservationService struct {
	reservations ReservationStore
	events       Checker
	users        Checker
	validate     *Validator
}

// NewReservationService constructs a ReservationService.
func NewReservationService(reservations ReservationStore, events, users Checker, v *Validator) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		events:       events,
		users:        users,
		validate:     v,
	}
}

// Create reserves one slot of the event for the user. The duplicate and
// capacity checks are evaluated by the store against committed state in the
// same transaction as the insert.
func (s *ReservationService) Create(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.Reservation{}, err
	}
	if err := mustExist(ctx, s.events, int64(*req.EventID), errEventIDMissing); err != nil {
		return model.Reservation{}, err
	}
	if err := mustExist(ctx, s.users, int64(*req.UserID), errUserIDMissing); err != nil {
		return model.Reservation{}, err
	}

	res, err := s.reservations.Reserve(ctx, int64(*req.UserID), int64(*req.EventID))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return model.Reservation{}, errEventIDMissing
		case errors.Is(err, repository.ErrMissingReference):
			return model.Reservation{}, errUserIDMissing
		case errors.Is(err, repository.ErrAlreadyReserved):
			return model.Reservation{}, model.Conflictf("user already has a reservation for this event")
		case errors.Is(err, repository.ErrEventFull):
			return model.Reservation{}, model.Validationf("no slots available for this event")
		}
		return model.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	return res, nil
}

// Get returns the reservation identified by rawID.
func (s *ReservationService) Get(ctx context.Context, rawID string) (model.Reservation, error) {
	id, err := ParseID("reservation ID", rawID)
	if err != nil {
		return model.Reservation{}, err
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reservation{}, errReservationNotFound
		}
		return model.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// Delete cancels a reservation, freeing its slot.
func (s *ReservationService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("reservation ID", rawID)
	if err != nil {
		return err
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}

// List returns all reservations, or those of the listed users, or those for
// the listed events. Every listed id must exist; the two filters are
// mutually exclusive.
func (s *ReservationService) List(ctx context.Context, rawUserIDs, rawEventIDs string) ([]model.Reservation, error) {
	rawUserIDs, rawEventIDs = strings.TrimSpace(rawUserIDs), strings.TrimSpace(rawEventIDs)
	if rawUserIDs != "" && rawEventIDs != "" {
		return nil, model.Validationf("the userIDs and eventIDs parameters cannot be provided together")
	}

	var (
		f   model.ReservationFilter
		err error
	)
	switch {
	case rawUserIDs != "":
		if f.UserIDs, err = ParseIDList("userIDs", rawUserIDs); err != nil {
			return nil, err
		}
		for _, id := range f.UserIDs {
			if err := mustExist(ctx, s.users, id, model.NotFoundf("the userID %d does not exist", id)); err != nil {
				return nil, err
			}
		}
	case rawEventIDs != "":
		if f.EventIDs, err = ParseIDList("eventIDs", rawEventIDs); err != nil {
			return nil, err
		}
		for _, id := range f.EventIDs {
			if err := mustExist(ctx, s.events, id, model.NotFoundf("the eventID %d does not exist", id)); err != nil {
				return nil, err
			}
		}
	}

	reservations, err := s.reservations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}
