package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-reservations/internal/model"
)

const userColumns = `id, username, firstname, lastname`

// UserRepository handles persistence for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.CollectableRow) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname)
	return u, err
}

// Create inserts a user and returns it with its generated id.
func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, firstname, lastname)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.Username, u.Firstname, u.Lastname,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrDuplicate
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update overwrites every column of the user with u.ID.
func (r *UserRepository) Update(ctx context.Context, u model.User) (model.User, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET username = $2, firstname = $3, lastname = $4 WHERE id = $1`,
		u.ID, u.Username, u.Firstname, u.Lastname,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrDuplicate
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// Delete removes a user that holds no reservations.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return deleteGuarded(ctx, r.db, "users", id, "reservations", "user_id")
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// ListByEvent returns the users holding a reservation for eventID.
func (r *UserRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, u.firstname, u.lastname
		 FROM users u
		 JOIN reservations res ON res.user_id = u.id
		 WHERE res.event_id = $1
		 ORDER BY u.id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list users by event: %w", err)
	}
	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// Exists reports whether a user with id exists.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "users", id)
}
