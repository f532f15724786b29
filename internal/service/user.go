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
	errUserNotFound  = model.NotFoundf("user not found")
	errUsernameTaken = model.Conflictf("a user with the specified username already exists")
)

// UserService orchestrates user operations.
type UserService struct {
	users    UserStore
	events   Checker
	validate *Validator
}

// NewUserService constructs a UserService. events is consulted when users
// are listed by event.
func NewUserService(users UserStore, events Checker, v *Validator) *UserService {
	return &UserService{users: users, events: events, validate: v}
}

func trimUser(username, firstname, lastname *string) {
	*username = strings.TrimSpace(*username)
	*firstname = strings.TrimSpace(*firstname)
	*lastname = strings.TrimSpace(*lastname)
}

// Create validates the request and registers a new user.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	trimUser(&req.Username, &req.Firstname, &req.Lastname)
	if err := s.validate.Struct(req); err != nil {
		return model.User{}, err
	}

	u, err := s.users.Create(ctx, model.User{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, errUsernameTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Get returns the user identified by rawID.
func (s *UserService) Get(ctx context.Context, rawID string) (model.User, error) {
	id, err := ParseID("user ID", rawID)
	if err != nil {
		return model.User{}, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update replaces the user's fields. The new username must not belong to
// another user.
func (s *UserService) Update(ctx context.Context, req model.UpdateUserRequest) (model.User, error) {
	trimUser(&req.Username, &req.Firstname, &req.Lastname)
	if err := s.validate.Struct(req); err != nil {
		return model.User{}, err
	}

	u, err := s.users.Update(ctx, model.User{
		ID:        int64(*req.ID),
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return model.User{}, errUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return model.User{}, errUsernameTaken
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes a user who holds no reservations.
func (s *UserService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID("user ID", rawID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errUserNotFound
		case errors.Is(err, repository.ErrHasDependents):
			return model.Conflictf("user has reservations, therefore cannot be deleted")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List returns all users, or with rawEventID set, the users holding a
// reservation for that event.
func (s *UserService) List(ctx context.Context, rawEventID string) ([]model.User, error) {
	eventID, err := optionalID("eventID", rawEventID)
	if err != nil {
		return nil, err
	}
	if eventID == nil {
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return users, nil
	}

	if err := mustExist(ctx, s.events, *eventID, errEventIDMissing); err != nil {
		return nil, err
	}
	users, err := s.users.ListByEvent(ctx, *eventID)
	if err != nil {
		return nil, fmt.Errorf("list users by event: %w", err)
	}
	return users, nil
}
